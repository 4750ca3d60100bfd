package tool

// Approval modes for MCP tool calls.
const (
	ApprovalNever  = "never"
	ApprovalAlways = "always"
)

type MCPResource struct {
	ServerLabel     string            `json:"server_label"`
	RequireApproval string            `json:"require_approval,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
}

// MCP points an agent at a remote MCP server.
type MCP struct {
	label    string
	url      string
	allowed  []string
	approval string
	headers  map[string]string
}

func NewMCP(serverLabel, serverURL string) *MCP {
	return &MCP{label: serverLabel, url: serverURL}
}

// AllowTools restricts the agent to the named tools. With none set every tool is allowed.
func (t *MCP) AllowTools(names ...string) *MCP {
	t.allowed = append(t.allowed, names...)
	return t
}

func (t *MCP) SetApprovalMode(mode string) *MCP {
	t.approval = mode
	return t
}

// SetHeader adds a header sent to the MCP server on each run.
func (t *MCP) SetHeader(key, value string) *MCP {
	if t.headers == nil {
		t.headers = map[string]string{}
	}
	t.headers[key] = value
	return t
}

func (t *MCP) Definitions() []Definition {
	return []Definition{{
		Type:            TypeMCP,
		ServerLabel:     t.label,
		ServerURL:       t.url,
		AllowedTools:    t.allowed,
		RequireApproval: t.approval,
	}}
}

func (t *MCP) Resources() Resources {
	return Resources{MCP: []MCPResource{{
		ServerLabel:     t.label,
		RequireApproval: t.approval,
		Headers:         t.headers,
	}}}
}
