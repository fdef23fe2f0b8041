package response

import "github.com/smartsubstation/auth-server/internal/model"

// Codes for the envelope's code field. Success is 200; authentication
// failures carry their own codes from the result code table.
const (
	CodeSuccess       = 200
	CodeUnauthorized  = 401
	CodeInternalError = 500
)

// Result is the envelope every JSON response is wrapped in.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Result {
	return Result{Code: CodeSuccess, Message: "success", Data: data}
}

// Err wraps a typed auth error in an envelope carrying its code.
func Err(authErr *model.AuthError) Result {
	return Result{Code: authErr.Code, Message: authErr.Message}
}

// Unauthorized is the envelope for requests that reached a protected route
// without a principal.
func Unauthorized() Result {
	return Result{Code: CodeUnauthorized, Message: "unauthorized, please login first"}
}

// Internal is the envelope for unexpected server faults. Internal details
// never reach the client.
func Internal() Result {
	return Result{Code: CodeInternalError, Message: "internal server error"}
}
