package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/awantoch/foundryflow/constants"
)

// ErrMissingConfig is returned (wrapped with the field name) by the call that first needs an unset value.
var ErrMissingConfig = errors.New("missing configuration")

type Config struct {
	LogicApp LogicAppConfig `json:"logic_app"`
	Foundry  FoundryConfig  `json:"foundry"`
	Auth     AuthConfig     `json:"auth"`
	MCP      MCPConfig      `json:"mcp"`
	OpenAPI  OpenAPIConfig  `json:"openapi"`
	Blob     BlobConfig     `json:"blob"`
	History  HistoryConfig  `json:"history"`
	Event    *EventConfig   `json:"event,omitempty"`
	Tracing  *TracingConfig `json:"tracing,omitempty"`
	Metrics  MetricsConfig  `json:"metrics"`
	Log      LogConfig      `json:"log"`
}

// LogicAppConfig locates the Logic App Standard site whose workflows become tools.
type LogicAppConfig struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	Name           string `json:"name"`
}

// FoundryConfig locates the AI Foundry account, project and agent endpoint.
type FoundryConfig struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	AccountName    string `json:"account_name"`
	ProjectName    string `json:"project_name"`
	// Endpoint is the project endpoint of the agent service.
	Endpoint       string `json:"endpoint"`
	APIVersion     string `json:"api_version,omitempty"`
	DeploymentName string `json:"deployment_name"`
	// ModelGateway is an optional model gateway connection name; v2 agents then use "<gateway>/<deployment>".
	ModelGateway string `json:"model_gateway,omitempty"`
	// AgentsAPI selects the agent service flavour: "v1" (assistants) or "v2" (named agents).
	AgentsAPI string `json:"agents_api,omitempty"`
}

type AuthConfig struct {
	TenantID       string `json:"tenant_id,omitempty"`
	UseAzureDevCLI bool   `json:"use_azure_dev_cli,omitempty"`
}

type MCPConfig struct {
	ServerURL   string `json:"server_url"`
	ServerLabel string `json:"server_label,omitempty"`
}

type OpenAPIConfig struct {
	ServerURL string `json:"server_url,omitempty"`
	SpecPath  string `json:"spec_path,omitempty"`
}

type BlobConfig struct {
	Driver    string `json:"driver"`
	Directory string `json:"directory,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
}

// HistoryConfig selects where provisioning records are kept.
type HistoryConfig struct {
	Driver string `json:"driver,omitempty"`
	DSN    string `json:"dsn,omitempty"`
}

type EventConfig struct {
	Driver    string `json:"driver"`
	URL       string `json:"url,omitempty"`
	ClusterID string `json:"cluster_id,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
}

type TracingConfig struct {
	Exporter    string `json:"exporter"`
	Endpoint    string `json:"endpoint,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

// MetricsConfig configures where run metrics are pushed; empty disables pushing.
type MetricsConfig struct {
	PushGateway string `json:"push_gateway,omitempty"`
	Job         string `json:"job,omitempty"`
}

type LogConfig struct {
	Level string `json:"level"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file when it exists, falls back to an empty config when it does not,
// and overlays the process environment.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = &Config{}
	}
	cfg.ApplyEnv(os.Getenv)
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields with any non-empty environment variable of the same meaning.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.LogicApp.SubscriptionID, constants.EnvLogicAppSubscriptionID)
	set(&c.LogicApp.ResourceGroup, constants.EnvLogicAppResourceGroup)
	set(&c.LogicApp.Name, constants.EnvLogicAppName)

	set(&c.Foundry.SubscriptionID, constants.EnvFoundrySubscriptionID)
	set(&c.Foundry.ResourceGroup, constants.EnvFoundryResourceGroup)
	set(&c.Foundry.AccountName, constants.EnvFoundryName)
	set(&c.Foundry.ProjectName, constants.EnvFoundryProjectName)
	set(&c.Foundry.Endpoint, constants.EnvFoundryEndpoint)
	set(&c.Foundry.DeploymentName, constants.EnvDeploymentName)
	set(&c.Foundry.APIVersion, constants.EnvAPIVersion)
	set(&c.Foundry.ModelGateway, constants.EnvModelGateway)

	set(&c.Auth.TenantID, constants.EnvTenantID)
	if v := getenv(constants.EnvUseAzureDevCLI); v != "" {
		// Only the literal "true" selects the developer CLI credential.
		c.Auth.UseAzureDevCLI = v == "true"
	}

	set(&c.OpenAPI.ServerURL, constants.EnvOpenAPIServerURL)
	set(&c.MCP.ServerURL, constants.EnvMCPServerURL)
	set(&c.MCP.ServerLabel, constants.EnvMCPServerLabel)

	set(&c.History.Driver, constants.EnvHistoryDriver)
	set(&c.History.DSN, constants.EnvHistoryDSN)
}

func (c *Config) applyDefaults() {
	if c.MCP.ServerLabel == "" {
		c.MCP.ServerLabel = constants.DefaultMCPServerLabel
	}
	if c.Foundry.APIVersion == "" {
		c.Foundry.APIVersion = constants.DefaultAgentsAPIVersion
	}
	if c.Foundry.AgentsAPI == "" {
		c.Foundry.AgentsAPI = constants.AgentsAPIV1
	}
}

// Require returns ErrMissingConfig wrapped with name when value is empty.
func Require(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, name)
	}
	return nil
}

// Model returns the model identifier agents are bound to.
func (f FoundryConfig) Model() string {
	if f.ModelGateway != "" {
		return f.ModelGateway + "/" + f.DeploymentName
	}
	return f.DeploymentName
}
