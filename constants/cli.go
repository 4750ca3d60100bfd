package constants

// CLI Commands
const (
	CmdWorkflows = "workflows"
	CmdSpec      = "spec"
	CmdLogicApp  = "logicapp"
	CmdOpenAPI   = "openapi"
	CmdMCP       = "mcp"
	CmdAgents    = "agents"
	CmdInvoke    = "invoke"
	CmdList      = "list"
	CmdDelete    = "delete"
	CmdConns     = "connections"
	CmdHistory   = "history"
)

// CLI Short Descriptions
const (
	DescWorkflows   = "List Logic App Standard workflows and their HTTP triggers"
	DescSpec        = "Synthesize an OpenAPI document for a workflow's HTTP trigger"
	DescLogicApp    = "Provision an agent whose tools are the Logic App's HTTP workflows"
	DescOpenAPI     = "Provision an agent from a static OpenAPI document"
	DescMCP         = "Provision an agent bound to an MCP server"
	DescAgents      = "Manage agents in the Foundry project"
	DescAgentsList  = "List agents"
	DescAgentsDel   = "Delete an agent by name"
	DescInvoke      = "Send a message to an agent and stream the reply"
	DescConns       = "List the Foundry project's connections"
	DescHistory     = "Show the local history of provisioned agents"
	DescRootCommand = "Provision Azure AI Foundry agents with OpenAPI and MCP tools"
)

// Agent defaults used by the CLI.
const (
	DefaultLogicAppAgentName = "LogicAppStandardAgent"
	DefaultLogicAppAgentInst = "You're a helpful agent"
	DefaultOpenAPIAgentName  = "Jonny_Weather_openapi"
	DefaultOpenAPIToolName   = "WeatherAPI"
	DefaultOpenAPIToolDesc   = "Retrieve weather information for a location"
	DefaultOpenAPISpecPath   = "weather.json"
	DefaultOpenAPIAgentInst  = "You are a reliable, funny and amusing weather forecaster named Jonny Weather. " +
		"You provide weather forecasts in a humorous and engaging manner. " +
		"You like to use puns and jokes to make the weather more entertaining. " +
		"You love to use emojis to make your forecasts more colorful and fun. " +
		"You provide weather forecasts in table format, for the next 2 days, including temperature, humidity, precipitation, and wind speed. " +
		"If you don't know the forecast, say 'I don't know' or 'I don't have that information'."
	DefaultOpenAPIMessage    = "What is the weather forecast for today and tomorrow in Seattle?"
	DefaultMCPAgentName      = "MCP-Agent"
	DefaultMCPAgentInst      = "you are a helpful assistant"
	DefaultMCPMessage        = "what's the weather in Cary,NC?"
	DefaultAdditionalInst    = "Today is {{ today }}"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)


// Agent service flavours
const (
	AgentsAPIV1 = "v1"
	AgentsAPIV2 = "v2"
)
