package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldChannelID       = "channel-id"
	FieldDealCount       = "deal-count"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldGuildID         = "guild-id"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldStore           = "store"
	FieldTask            = "task"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
