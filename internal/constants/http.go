package constants

const (
	HeaderTraceID       = "X-Trace-ID"
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)
