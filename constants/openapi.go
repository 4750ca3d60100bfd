package constants

// OpenAPI document constants for Logic App trigger invocation.
const (
	OpenAPIVersion          = "3.0.3"
	OpenAPIInfoVersion      = "1.0.0.0"
	OpenAPIInvokePath       = "/invoke"
	OpenAPIOperationID      = "When_a_HTTP_request_is_received-invoke"
	OpenAPIPlaceholderURL   = "https://your-logic-app-url/paths"
	OpenAPIDefaultType      = "string"
	OpenAPIResponseDesc     = "The Logic App Response."
	OpenAPISecuritySchemeID = "sig"
	OpenAPISecurityDesc     = "The SHA 256 hash of the entire request URI with an internal key."

	TriggerAPIVersion     = "2022-05-01"
	TriggerAPIVersionDesc = "`2022-05-01` is the most common generally available version"
	TriggerSV             = "1.0"
	TriggerSVDesc         = "The version number"
	TriggerSP             = "%2Ftriggers%2FWhen_a_HTTP_request_is_received%2Frun"
	TriggerSPDesc         = "The permissions"

	CallbackSignatureParam = "sig"
	CallbackInvokeSuffix   = "/invoke"
)
