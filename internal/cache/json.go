package cache

import (
	"context"
	"fmt"
	"net/http"

	"storysite/internal/apiclient"
)

func parseAny(resp *apiclient.Response) (any, error) {
	return apiclient.DecodeJSON[any](resp)
}

// GetJSON читает url через кэш и разбирает JSON в T.
func GetJSON[T any](ctx context.Context, c *RequestCache, url string, opts Options) (T, error) {
	var zero T
	if opts.Parse == nil {
		opts.Parse = func(resp *apiclient.Response) (any, error) {
			return apiclient.DecodeJSON[T](resp)
		}
	}
	value, err := c.Get(ctx, url, opts)
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %s has type %T, want %T", url, value, zero)
	}
	return typed, nil
}

// NullOnNoContent разбирает JSON в *T, а ответ 204 или пустое тело превращает в nil.
func NullOnNoContent[T any](resp *apiclient.Response) (any, error) {
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}
	value, err := apiclient.DecodeJSON[T](resp)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
