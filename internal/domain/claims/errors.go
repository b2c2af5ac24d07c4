package claims

import "fmt"

// Error codes surfaced in API envelopes. Risk flags and plan findings are not
// errors; only a fundamentally unusable invocation produces one of these.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeParseError = "PARSE_ERROR"
)

// CodedError is a structured error carried to the response envelope as
// {code, message}.
type CodedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// BadRequest builds a BAD_REQUEST error.
func BadRequest(format string, args ...interface{}) *CodedError {
	return &CodedError{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)}
}

// ParseError builds a PARSE_ERROR error.
func ParseError(format string, args ...interface{}) *CodedError {
	return &CodedError{Code: CodeParseError, Message: fmt.Sprintf(format, args...)}
}
