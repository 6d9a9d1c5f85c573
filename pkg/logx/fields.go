package logx

const (
	FieldActor           = "actor"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldBuyRequestID    = "buy-request-id"
	FieldChatID          = "chat-id"
	FieldCount           = "count"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldErrorClass      = "error-class"
	FieldEventType       = "event-type"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldModelPriceID    = "model-price-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldStatus          = "status"
	FieldTaskID          = "task-id"
	FieldTaskType        = "task-type"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldUserAgent       = "user-agent"
	FieldUserEmail       = "user-email"
)
