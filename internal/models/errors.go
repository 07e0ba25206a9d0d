package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
)

// DefaultFetchErrorMessage - сообщение по умолчанию при неуспешном ответе.
const DefaultFetchErrorMessage = "Không thể tải dữ liệu"

// APIError - неуспешный ответ бэкенда с сообщением для пользователя.
type APIError struct {
	StatusCode int
	Message    string
}

// NewAPIError создает ошибку; пустое сообщение заменяется значением по умолчанию.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = DefaultFetchErrorMessage
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

func (e *APIError) Error() string {
	return e.Message
}

// Is сопоставляет коды ответа со стандартными ошибками.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// Describe возвращает строку для логов вместе с кодом.
func (e *APIError) Describe() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// UserMessage достает текст для показа пользователю из любой ошибки.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
