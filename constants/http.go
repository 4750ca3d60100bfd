package constants

import "time"

// HTTP Methods
const (
	HTTPMethodGET    = "GET"
	HTTPMethodPOST   = "POST"
	HTTPMethodPUT    = "PUT"
	HTTPMethodDELETE = "DELETE"
)

// Content Types
const (
	ContentTypeJSON        = "application/json"
	ContentTypeEventStream = "text/event-stream"
	ContentTypeYAML        = "application/yaml"
)

// HTTP Headers
const (
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderClientRequestID = "x-ms-client-request-id"
)

// Default Values
const (
	DefaultHTTPTimeout = 60 * time.Second
	JSONIndent         = "  "
)
