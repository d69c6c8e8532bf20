package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rmorales-dev/tienda-sync/internal/errors"
	"github.com/rmorales-dev/tienda-sync/internal/middleware"
	"github.com/rmorales-dev/tienda-sync/internal/storage"
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

type UploadController struct {
	storage *storage.ImageStorage
}

func NewUploadController(storage *storage.ImageStorage) *UploadController {
	return &UploadController{storage: storage}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignUpload returns a presigned S3 PUT URL for a product image.
// POST /api/v1/uploads/presigned
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	resp, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.InternalError(c, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, resp)
}
