package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"storysite/internal/models"
)

// DecodeJSON разбирает тело ответа в T.
func DecodeJSON[T any](resp *Response) (T, error) {
	var out T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("decode response body: %w", err)
	}
	return out, nil
}

// ExpectOK возвращает *models.APIError с message, если ответ не 2xx.
func ExpectOK(resp *Response, message string) error {
	if resp.OK() {
		return nil
	}
	return models.NewAPIError(resp.StatusCode, message)
}

// ExpectOKServerMessage как ExpectOK, но предпочитает сообщение сервера.
func ExpectOKServerMessage(resp *Response, fallback string) error {
	if resp.OK() {
		return nil
	}
	return models.NewAPIError(resp.StatusCode, ServerMessage(resp, fallback))
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ServerMessage достает message/error из JSON тела ошибки, иначе текст тела, иначе fallback.
func ServerMessage(resp *Response, fallback string) string {
	if resp == nil || len(resp.Body) == 0 {
		return fallback
	}
	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
		return fallback
	}
	if text := strings.TrimSpace(string(resp.Body)); text != "" && !strings.HasPrefix(text, "<") {
		return text
	}
	return fallback
}
