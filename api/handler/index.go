package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-chi/render"

	"github.com/metricsim/metricsim/metrics"
)

type indexData struct {
	Counters   []string
	Gauges     []string
	Histograms []string
}

// The help page is static, so it is rendered once at startup.
var indexPage = mustRenderIndex()

func (h *handler) index(writer http.ResponseWriter, request *http.Request) {
	render.HTML(writer, request, string(indexPage))
}

func mustRenderIndex() []byte {
	data := indexData{
		Counters:   []string{metrics.NameHTTPRequests, metrics.NameHTTPErrors, metrics.NameBytesProcessed},
		Gauges:     []string{metrics.NameActiveConnections, metrics.NameMemoryUsage, metrics.NameQueueSize, metrics.NameCPUUsage},
		Histograms: []string{metrics.NameHTTPDuration, metrics.NameDBDuration, metrics.NameResponseSize},
	}

	t := template.Must(template.New("index").Funcs(sprig.HtmlFuncMap()).Parse(indexTemplate))
	buf := bytes.Buffer{}
	if err := t.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Prometheus &amp; OTEL Metrics Simulator</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background-color: #f5f5f5; }
        .container { background-color: white; padding: 30px; border-radius: 8px; max-width: 900px; margin: 0 auto; }
        h1 { color: #333; }
        h2 { color: #0066cc; border-bottom: 2px solid #0066cc; padding-bottom: 10px; }
        .endpoint { background-color: #e8f4f8; padding: 15px; margin: 10px 0; border-radius: 5px; }
        .endpoint-url { color: #0066cc; font-weight: bold; font-size: 16px; }
        .button-group { margin-top: 10px; }
        button { background-color: #0066cc; color: white; padding: 10px 20px;
                 border: none; border-radius: 5px; cursor: pointer; font-size: 14px; margin-right: 10px; }
        button:hover { background-color: #0052a3; }
        .otel-button { background-color: #28a745; }
        .otel-button:hover { background-color: #218838; }
        .info { background-color: #fff3cd; padding: 10px; border-radius: 5px; margin-top: 20px; }
        .comparison { background-color: #e7f3ff; padding: 15px; border-radius: 5px; margin-top: 20px; }
        table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #0066cc; color: white; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🎯 Prometheus &amp; OpenTelemetry Metrics Simulator</h1>
        <p>Generate metrics in both Prometheus and OpenTelemetry formats!</p>

        <h2>📊 Prometheus Endpoints</h2>

        <div class="endpoint">
            <div class="endpoint-url">GET /generatemetrics</div>
            <p>Generates Prometheus-format metrics</p>
            <div class="button-group">
                <button onclick="fetch('/generatemetrics').then(r => r.text()).then(alert)">
                    Generate Prometheus Metrics
                </button>
                <button onclick="window.open('/metrics', '_blank')">View Metrics</button>
            </div>
        </div>

        <div class="endpoint">
            <div class="endpoint-url">GET /metrics</div>
            <p>Returns all Prometheus metrics in exposition format</p>
        </div>

        <h2>🔭 OpenTelemetry Endpoints</h2>

        <div class="endpoint">
            <div class="endpoint-url">GET /generateotelmetrics</div>
            <p>Generates OpenTelemetry-format metrics</p>
            <div class="button-group">
                <button class="otel-button" onclick="fetch('/generateotelmetrics').then(r => r.text()).then(alert)">
                    Generate OTEL Metrics
                </button>
                <button class="otel-button" onclick="window.open('/otelmetrics', '_blank')">View OTEL Metrics</button>
            </div>
        </div>

        <div class="endpoint">
            <div class="endpoint-url">GET /otelmetrics</div>
            <p>Returns OpenTelemetry metrics in JSON format</p>
        </div>

        <div class="comparison">
            <h3>📋 Key Differences</h3>
            <table>
                <tr>
                    <th>Aspect</th>
                    <th>Prometheus</th>
                    <th>OpenTelemetry</th>
                </tr>
                <tr>
                    <td><strong>Format</strong></td>
                    <td>Text-based exposition format</td>
                    <td>JSON/Protobuf (OTLP)</td>
                </tr>
                <tr>
                    <td><strong>Pull/Push</strong></td>
                    <td>Pull-based (scraping)</td>
                    <td>Push-based (export)</td>
                </tr>
                <tr>
                    <td><strong>Metric Types</strong></td>
                    <td>Counter, Gauge, Histogram, Summary</td>
                    <td>Counter, Gauge, Histogram</td>
                </tr>
                <tr>
                    <td><strong>Labels</strong></td>
                    <td>Key-value pairs</td>
                    <td>Attributes (key-value pairs)</td>
                </tr>
                <tr>
                    <td><strong>Best For</strong></td>
                    <td>Kubernetes, infrastructure monitoring</td>
                    <td>Distributed tracing, multi-vendor</td>
                </tr>
            </table>
        </div>

        <div class="info">
            <strong>💡 How to use:</strong>
            <ol>
                <li><strong>Prometheus:</strong> Click "Generate Prometheus Metrics" then "View Metrics"</li>
                <li><strong>OpenTelemetry:</strong> Click "Generate OTEL Metrics" then "View OTEL Metrics"</li>
                <li>Compare the different formats!</li>
            </ol>
        </div>

        <h3>Metric Types Included:</h3>
        <ul>
            <li><strong>Counters:</strong> {{ join ", " .Counters }}</li>
            <li><strong>Gauges:</strong> {{ join ", " .Gauges }}</li>
            <li><strong>Histograms:</strong> {{ join ", " .Histograms }}</li>
        </ul>
    </div>
</body>
</html>
`
