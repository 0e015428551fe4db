package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"marketplace_api/internal/pkg/uploader"
	"marketplace_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps a single image at 5 MiB.
const maxUploadSize = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload godoc
// @Summary Upload an image and get back its public URL
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image file"
// @Success 201 {object} response.Response
// @Router /media/upload [post]
// @Security BearerAuth
func (h *MediaHandler) Upload(c *gin.Context) {
	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing file")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "File is too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		response.Error(c, http.StatusBadRequest, "Unsupported file type")
		return
	}

	url, err := uploader.GlobalUploader.UploadFile(file)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, gin.H{"url": url})
}
