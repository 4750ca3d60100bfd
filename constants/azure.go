package constants

// Token audiences
const (
	ScopeManagement = "https://management.azure.com/.default"
	ScopeAIFoundry  = "https://ai.azure.com/.default"
)

// Azure Resource Manager
const (
	ARMBaseURL = "https://management.azure.com"

	// Logic App Standard host runtime management API.
	APIVersionWorkflowList = "2018-11-01"
	APIVersionTrigger      = "2024-11-01"

	// Cognitive Services project connections.
	APIVersionConnections = "2025-04-01-preview"
)

// Agent service
const (
	DefaultAgentsAPIVersion = "2025-05-15-preview"
	DefaultAgentsPageSize   = 100
	DefaultTemperature      = 0.2
)

// Custom key connections
const (
	ConnectionAuthTypeCustomKeys = "CustomKeys"
	ConnectionCategoryCustomKeys = "CustomKeys"
	ConnectionTargetAny          = "_"
	ConnectionNamePrefix         = "openapi-logicapp-"
)

// Workflow triggers
const (
	TriggerKindHTTP = "Http"
)
