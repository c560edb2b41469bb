package handler

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/render"

	"github.com/metricsim/metricsim/api"
	"github.com/metricsim/metricsim/api/middleware"
)

const pullConfirmation = `Prometheus metrics generated successfully!

Generated:
- %d HTTP request samples
- %d Database query samples
- System metrics (connections, memory, CPU, queues)
- %d Payload size samples

View metrics at: http://%s/metrics
`

const pushConfirmation = `OpenTelemetry metrics generated successfully!

Generated:
- %d HTTP request samples (OTEL format)
- %d Database query samples (OTEL format)
- System metrics (connections, memory, CPU, queues)
- %d Payload size samples (OTEL format)

View metrics at: http://%s/otelmetrics

Note: OTEL metrics are shown in a simplified JSON format.
In production, these would be exported to an OTEL collector using OTLP protocol.
`

func (h *handler) generatePull(writer http.ResponseWriter, request *http.Request) {
	report, err := h.pullGenerator.GenerateAll()
	if err != nil {
		render.Render(writer, request, api.ErrorInternalServer(err)) //nolint
		return
	}

	log := middleware.GetLoggerEntry(request)
	log.String("bytes_processed", humanize.Bytes(uint64(report.BytesProcessed)))

	response := fmt.Sprintf(pullConfirmation, report.HTTPSamples, report.DatabaseSamples, report.PayloadSamples, h.viewHost)
	render.PlainText(writer, request, response)
}

func (h *handler) generatePush(writer http.ResponseWriter, request *http.Request) {
	report, err := h.pushGenerator.GenerateAll(request.Context())
	if err != nil {
		render.Render(writer, request, api.ErrorInternalServer(err)) //nolint
		return
	}

	log := middleware.GetLoggerEntry(request)
	log.String("bytes_processed", humanize.Bytes(uint64(report.BytesProcessed)))

	response := fmt.Sprintf(pushConfirmation, report.HTTPSamples, report.DatabaseSamples, report.PayloadSamples, h.viewHost)
	render.PlainText(writer, request, response)
}
