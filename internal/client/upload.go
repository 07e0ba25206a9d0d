package client

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/models"
)

// UploadClient загружает изображения; хранение на стороне бэкенда.
type UploadClient interface {
	Cover(ctx context.Context, fileName string, r io.Reader) (*models.UploadResponse, error)
	Image(ctx context.Context, fileName string, r io.Reader) (*models.UploadResponse, error)
}

type uploadClient struct {
	base
}

// NewUploadClient создает клиента загрузок.
func NewUploadClient(deps Deps) UploadClient {
	return &uploadClient{base: newBase(deps, "UploadClient")}
}

func (c *uploadClient) Cover(ctx context.Context, fileName string, r io.Reader) (*models.UploadResponse, error) {
	return c.upload(ctx, "cover", fileName, r)
}

func (c *uploadClient) Image(ctx context.Context, fileName string, r io.Reader) (*models.UploadResponse, error) {
	return c.upload(ctx, "image", fileName, r)
}

func (c *uploadClient) upload(ctx context.Context, kind, fileName string, r io.Reader) (*models.UploadResponse, error) {
	out, err := sendJSON[models.UploadResponse](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   "/api/admin/uploads/" + kind,
		Files:  []apiclient.File{{Param: "file", FileName: fileName, Reader: r}},
		Auth:   true,
	}, msgUploadFailed)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Image uploaded", zap.String("kind", kind), zap.String("url", out.URL))
	return &out, nil
}
