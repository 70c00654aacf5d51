package http

const (
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeInternal         = "INTERNAL_ERROR"
)
