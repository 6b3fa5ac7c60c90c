package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/internal/media"
	"github.com/fekuna/boutique-catalog-service/internal/workflow"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxFiles = 10

var folders = map[string]bool{
	"products":   true,
	"categories": true,
}

type MediaHandler struct {
	uploader workflow.ImageUploader
	logger   logger.ZapLogger
}

func NewMediaHandler(uploader workflow.ImageUploader, log logger.ZapLogger) *MediaHandler {
	return &MediaHandler{uploader: uploader, logger: log}
}

func (h *MediaHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
}

type progressEvent struct {
	Index   int `json:"index"`
	Percent int `json:"percent"`
	Total   int `json:"total"`
}

// Upload stores the multipart "files" under ?folder= (products or
// categories). Clients sending Accept: text/event-stream get one "progress"
// event per step followed by a "done" or "error" event; others get the URL
// list as JSON.
func (h *MediaHandler) Upload(c *gin.Context) {
	folder := c.DefaultPostForm("folder", c.DefaultQuery("folder", "products"))
	if !folders[folder] {
		httpx.Fail(c, http.StatusBadRequest, "folder must be products or categories", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid multipart form", err)
		return
	}
	headers := form.File["files"]
	switch {
	case len(headers) == 0:
		httpx.Fail(c, http.StatusBadRequest, "no files uploaded", nil)
		return
	case len(headers) > maxFiles:
		httpx.Fail(c, http.StatusBadRequest, "too many files", nil)
		return
	}

	files, closeAll, err := openAll(headers)
	defer closeAll()
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "could not read upload", err)
		return
	}

	ctx := c.Request.Context()
	if !strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		urls, err := h.uploader.UploadMultipleImagesWithProgress(ctx, files, folder, nil)
		if err != nil {
			h.fail(c, urls, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"urls": urls})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	urls, err := h.uploader.UploadMultipleImagesWithProgress(ctx, files, folder, func(index, percent, total int) {
		c.SSEvent("progress", progressEvent{Index: index, Percent: percent, Total: total})
		c.Writer.Flush()
	})
	if err != nil {
		h.logger.Warn("streamed upload failed", zap.Int("stored", len(urls)), zap.Error(err))
		c.SSEvent("error", gin.H{"message": err.Error(), "urls": urls})
		c.Writer.Flush()
		return
	}
	c.SSEvent("done", gin.H{"urls": urls})
	c.Writer.Flush()
}

func (h *MediaHandler) fail(c *gin.Context, stored []string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrObjectExists):
		status = http.StatusConflict
	}
	h.logger.Warn("upload failed", zap.Int("stored", len(stored)), zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": "upload failed", "error": err.Error(), "urls": stored})
}

func openAll(headers []*multipart.FileHeader) ([]media.File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, f)
		files = append(files, media.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
