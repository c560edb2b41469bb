package handler

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	"github.com/metricsim/metricsim"
	"github.com/metricsim/metricsim/api"
	metricsimmiddle "github.com/metricsim/metricsim/api/middleware"
	"github.com/metricsim/metricsim/generator"
	"github.com/metricsim/metricsim/metrics"
)

type handler struct {
	logger        metricsim.Logger
	pullRegistry  *metrics.PullRegistry
	pushRegistry  *metrics.PushRegistry
	pullGenerator *generator.PullGenerator
	pushGenerator *generator.PushGenerator
	viewHost      string
}

// NewHandler creates a new metricsim http.Handler: the help page, the two
// exposition routes and the two generation triggers. Every route is GET only,
// anything else gets a plain text 404.
func NewHandler(
	logger metricsim.Logger,
	pullRegistry *metrics.PullRegistry,
	pushRegistry *metrics.PushRegistry,
	pullGenerator *generator.PullGenerator,
	pushGenerator *generator.PushGenerator,
	config *api.Config,
) http.Handler {
	h := &handler{
		logger:        logger,
		pullRegistry:  pullRegistry,
		pushRegistry:  pushRegistry,
		pullGenerator: pullGenerator,
		pushGenerator: pushGenerator,
		viewHost:      config.ViewHost(),
	}

	router := chi.NewRouter()
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(metricsimmiddle.RequestLogger(logger))
	router.Use(middleware.NoCache)
	router.Use(metricsimmiddle.Recoverer(logger))

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	router.Get("/", h.index)
	router.Get("/metrics", h.pullMetrics)
	router.Get("/otelmetrics", h.pushMetrics)
	router.Get("/generatemetrics", h.generatePull)
	router.Get("/generateotelmetrics", h.generatePush)

	if config.EnableCORS {
		return cors.AllowAll().Handler(router)
	}
	return router
}

func (h *handler) notFound(writer http.ResponseWriter, request *http.Request) {
	render.Status(request, http.StatusNotFound)
	render.PlainText(writer, request, "404 - Not Found")
}
