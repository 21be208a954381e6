package serverutils

type Response[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Status:  200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(status int, message string) ErrResponse {
	return ErrResponse{
		Status:  status,
		Message: message,
	}
}
