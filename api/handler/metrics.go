package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"github.com/metricsim/metricsim/api"
	"github.com/metricsim/metricsim/metrics"
)

func (h *handler) pullMetrics(writer http.ResponseWriter, request *http.Request) {
	payload, err := h.pullRegistry.Serialize()
	if err != nil {
		render.Render(writer, request, api.ErrorInternalServer(err)) //nolint
		return
	}

	writer.Header().Set("Content-Type", metrics.TextContentType)
	writer.Write(payload) //nolint
}

func (h *handler) pushMetrics(writer http.ResponseWriter, request *http.Request) {
	summary := h.pushRegistry.Summary()
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		render.Render(writer, request, api.ErrorInternalServer(err)) //nolint
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.Write(payload) //nolint
}
