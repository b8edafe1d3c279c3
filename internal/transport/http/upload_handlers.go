package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/homeboard/internal/core"
	"github.com/vovakirdan/homeboard/internal/metrics"
	"github.com/vovakirdan/homeboard/internal/uploads"
)

// UploadHandlers stores uploaded images and serves them back.
type UploadHandlers struct {
	hub Broadcaster
	dir *uploads.Dir
	log *zerolog.Logger
}

// NewUploadHandlers creates a new upload handlers instance.
func NewUploadHandlers(hub Broadcaster, dir *uploads.Dir, logger *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{
		hub: hub,
		dir: dir,
		log: logger,
	}
}

// Upload saves the multipart field "file" and announces it as a new image.
// Every outcome redirects to the dashboard; rejected uploads change nothing.
// POST /upload
func (h *UploadHandlers) Upload(c *gin.Context) {
	defer c.Redirect(http.StatusFound, "/")

	file, err := c.FormFile("file")
	if err != nil || file.Filename == "" {
		metrics.Uploads.WithLabelValues(metrics.UploadMissing).Inc()
		h.log.Debug().Err(err).Msg("upload without file")
		return
	}

	// The multipart reader has already reduced the name to its final path element.
	name := file.Filename
	if !uploads.Allowed(name) {
		metrics.Uploads.WithLabelValues(metrics.UploadRejected).Inc()
		h.log.Info().Str("filename", name).Msg("upload rejected: extension not allowed")
		return
	}

	dst, ok := h.dir.Path(name)
	if !ok {
		metrics.Uploads.WithLabelValues(metrics.UploadRejected).Inc()
		h.log.Info().Str("filename", name).Msg("upload rejected: bad filename")
		return
	}

	if err := c.SaveUploadedFile(file, dst); err != nil {
		metrics.Uploads.WithLabelValues(metrics.UploadFailed).Inc()
		h.log.Error().Err(err).Str("filename", name).Msg("failed to save upload")
		return
	}

	// Wait for the hub so the page behind the redirect already lists the image.
	if err := h.hub.Apply(c.Request.Context(), &core.Command{Kind: core.CommandNewImage, Value: name}); err != nil {
		metrics.Uploads.WithLabelValues(metrics.UploadFailed).Inc()
		h.log.Error().Err(err).Str("filename", name).Msg("failed to announce upload")
		return
	}

	metrics.Uploads.WithLabelValues(metrics.UploadAccepted).Inc()
	h.log.Info().Str("filename", name).Int64("size", file.Size).Msg("image uploaded")
}

// Serve streams a previously uploaded file.
// GET /uploads/:filename
func (h *UploadHandlers) Serve(c *gin.Context) {
	name := c.Param("filename")

	f, info, err := h.dir.Open(name)
	if err != nil {
		if errors.Is(err, uploads.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.log.Error().Err(err).Str("filename", name).Msg("failed to open upload")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
