package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"insufficient balance"`
	Code  string `json:"code" example:"INSUFFICIENT_FUNDS"`
}
