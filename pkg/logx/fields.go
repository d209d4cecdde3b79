package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldRequestBody     = "request-body"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"

	FieldListingID   = "listing-id"
	FieldMarketplace = "marketplace"
	FieldCategory    = "category"
	FieldAction      = "action"
	FieldPrice       = "price"
	FieldScore       = "score"
	FieldBudget      = "budget"
	FieldBucket      = "bucket"
	FieldKey         = "key"
	FieldCount       = "count"
)
