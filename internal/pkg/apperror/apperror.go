package apperror

import "github.com/gofiber/fiber/v2"

// Error codes carried across the service boundary. The HTTP layer maps
// them onto statuses in one place (serverutils.ErrorHandlerMiddleware).
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInsufficientData    = "INSUFFICIENT_DATA"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

type AppError struct {
	Code    string
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewInvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Status: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Status: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Status: fiber.StatusConflict, Message: message}
}

func NewInsufficientData(message string) *AppError {
	return &AppError{Code: CodeInsufficientData, Status: fiber.StatusUnprocessableEntity, Message: message}
}

func NewUpstreamUnavailable(message string) *AppError {
	return &AppError{Code: CodeUpstreamUnavailable, Status: fiber.StatusBadGateway, Message: message}
}
