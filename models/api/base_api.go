package apimodels

type Response struct {
	Status    string      `json:"status"`              // fail/success
	Message   string      `json:"message,omitempty"`   // error message
	Code      string      `json:"code,omitempty"`      // workflow error kind
	Retryable bool        `json:"retryable,omitempty"` // safe to retry after re-reading the state
	Data      interface{} `json:"data,omitempty"`      // payload
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewKindError(code, message string, retryable bool) Response {
	return Response{
		Status:    "fail",
		Message:   message,
		Code:      code,
		Retryable: retryable,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}
