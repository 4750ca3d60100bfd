package constants

// Configuration Files
const (
	ConfigFileName = "foundry.config.json"
	EnvFileName    = ".env"
)

// Environment Variables
const (
	EnvDebug = "FOUNDRY_DEBUG"

	EnvLogicAppSubscriptionID = "LOGIC_APP_SUBSCRIPTION_ID"
	EnvLogicAppResourceGroup  = "LOGIC_APP_RESOURCE_GROUP"
	EnvLogicAppName           = "LOGIC_APP_NAME"

	EnvFoundrySubscriptionID = "AZURE_AI_FOUNDRY_SUBSCRIPTION_ID"
	EnvFoundryResourceGroup  = "AZURE_AI_FOUNDRY_RESOURCE_GROUP"
	EnvFoundryName           = "AZURE_AI_FOUNDRY_NAME"
	EnvFoundryProjectName    = "AZURE_AI_FOUNDRY_PROJECT_NAME"
	EnvFoundryEndpoint       = "AZURE_AI_FOUNDRY_CONNECTION_STRING"
	EnvDeploymentName        = "AZURE_OPENAI_CHAT_DEPLOYMENT_NAME"
	EnvAPIVersion            = "AZURE_OPENAI_API_VERSION"
	EnvModelGateway          = "MODEL_GATEWAY_CONNECTION"

	EnvTenantID       = "AZURE_TENANT_ID"
	EnvUseAzureDevCLI = "USE_AZURE_DEV_CLI"

	EnvOpenAPIServerURL = "OPENAPI_SERVER_URL"
	EnvMCPServerURL     = "MCP_SERVER_URL"
	EnvMCPServerLabel   = "MCP_SERVER_LABEL"

	EnvHistoryDriver = "FOUNDRY_HISTORY_DRIVER"
	EnvHistoryDSN    = "FOUNDRY_HISTORY_DSN"
)

// Defaults
const (
	DefaultMCPServerLabel = "tool"
	DefaultBlobDir        = ".foundry/artifacts"
	DefaultServiceName    = "foundryflow"
	DefaultHistoryDSN     = ".foundry/history.db"
	DefaultNATSClusterID  = "foundryflow"
	DefaultNATSClientID   = "foundryflow-client"
)

// History drivers
const (
	HistoryDriverSqlite   = "sqlite"
	HistoryDriverPostgres = "postgres"
	HistoryDriverMemory   = "memory"
)

// Event bus drivers
const (
	EventDriverMemory = "memory"
	EventDriverNATS   = "nats"
)

// Blob drivers
const (
	BlobDriverFilesystem = "filesystem"
	BlobDriverS3         = "s3"
)

// Tracing exporters
const (
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
)
