package http

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/homeboard/internal/config"
	"github.com/vovakirdan/homeboard/internal/core"
	"github.com/vovakirdan/homeboard/internal/store"
	"github.com/vovakirdan/homeboard/internal/uploads"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Broadcaster is the part of core.Hub the transport needs.
type Broadcaster interface {
	RegisterClient(c *core.Client) error
	UnregisterClient(c *core.Client)
	Dispatch(ctx context.Context, cmd *core.Command) error
	Apply(ctx context.Context, cmd *core.Command) error
}

// NewServer builds the HTTP server with every dashboard route.
func NewServer(hub Broadcaster, st store.Store, dir *uploads.Dir, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(hub, st, dir, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewHandler mounts the WebSocket endpoint next to the gin router. /ws lives on
// the plain mux because gin marks the response written before the upgrade can
// take over the connection.
func NewHandler(hub Broadcaster, st store.Store, dir *uploads.Dir, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg.MaxMessageBytes, logger))
	mux.Handle("/", NewRouter(hub, st, dir, cfg, logger))
	return mux
}

// NewRouter wires the page, upload and ops handlers onto a gin engine.
func NewRouter(hub Broadcaster, st store.Store, dir *uploads.Dir, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))
	router.MaxMultipartMemory = cfg.MaxMultipartMemory
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(fmt.Sprintf("embedded assets: %v", err))
	}

	pages := NewPageHandlers(st, logger)
	files := NewUploadHandlers(hub, dir, logger)

	router.GET("/", pages.Index)
	router.GET("/api/snapshot", pages.Snapshot)
	router.POST("/upload", files.Upload)
	router.POST("/upload_image", files.Upload)
	router.GET("/uploads/:filename", files.Serve)
	router.StaticFS("/assets", stdhttp.FS(assets))
	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
