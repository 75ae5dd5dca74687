package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/storage"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

var fileHandler *FileHandler

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

type uploadURLRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

// GenerateUploadURL hands the client a short-lived signed PUT URL so image
// bytes never transit the API server.
func (h *FileHandler) GenerateUploadURL(c echo.Context) error {
	var req uploadURLRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if !storage.AllowedContentType(req.ContentType) {
		return response.Error(c, errors.BadRequest("Unsupported image content type", nil))
	}

	uid := c.Get("uid").(string)

	uploadURL, objectURL, err := h.storageClient.GenerateSignedUploadURL(c.Request().Context(), req.ContentType, "listings/"+uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"upload_url": uploadURL,
		"object_url": objectURL,
	})
}
