package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/homeboard/internal/proto"
	"github.com/vovakirdan/homeboard/internal/store"
)

// PageHandlers renders the dashboard and its JSON snapshot.
type PageHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewPageHandlers creates a new page handlers instance.
func NewPageHandlers(st store.Store, logger *zerolog.Logger) *PageHandlers {
	return &PageHandlers{
		store: st,
		log:   logger,
	}
}

// Index renders the dashboard with the current content of every list.
// GET /
func (h *PageHandlers) Index(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read snapshot")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.HTML(http.StatusOK, "index.html", snap)
}

// Snapshot returns every list as JSON.
// GET /api/snapshot
func (h *PageHandlers) Snapshot(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read snapshot")
		c.JSON(http.StatusInternalServerError, proto.Error{Code: "internal", Msg: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, proto.Snapshot{
		Messages:     snap.Messages,
		ShoppingList: snap.ShoppingItems,
		Tasks:        snap.Tasks,
		Images:       snap.Images,
	})
}
