package generator

import (
	"bytes"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/mock/gomock"

	"github.com/metricsim/metricsim/metrics"
	mock_metricsim "github.com/metricsim/metricsim/mock/metricsim"
)

func TestPullGeneratorGenerateHTTP(t *testing.T) {
	Convey("Given a pull generator over a scripted source", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		source := mock_metricsim.NewMockSource(mockCtrl)
		registry := metrics.NewPullRegistry()
		So(metrics.RegisterPullCatalog(registry), ShouldBeNil)
		generator := NewPullGenerator(registry, source)

		Convey("A successful request updates requests, durations and sizes", func() {
			gomock.InOrder(
				source.EXPECT().Pick(httpMethods).Return("GET"),
				source.EXPECT().Pick(httpEndpoints).Return("/users"),
				source.EXPECT().Float64().Return(0.1),
				source.EXPECT().UniformFloat(0.05, 2.0).Return(1.25),
				source.EXPECT().UniformInt(100, 50000).Return(2048),
			)

			So(generator.GenerateHTTP(1), ShouldBeNil)

			families := parsePullFamilies(registry)
			requests := findSeries(families[metrics.NameHTTPRequests], map[string]string{"method": "GET", "endpoint": "/users", "status": "200"})
			So(requests.GetCounter().GetValue(), ShouldEqual, 1)

			duration := findSeries(families[metrics.NameHTTPDuration], map[string]string{"method": "GET", "endpoint": "/users", "status": "200"})
			So(duration.GetHistogram().GetSampleCount(), ShouldEqual, 1)
			So(duration.GetHistogram().GetSampleSum(), ShouldEqual, 1.25)

			summary := findSeries(families[metrics.NameRequestSummary], map[string]string{"method": "GET", "endpoint": "/users"})
			So(summary.GetSummary().GetSampleCount(), ShouldEqual, 1)
			So(summary.GetSummary().GetSampleSum(), ShouldEqual, 1.25)

			size := findSeries(families[metrics.NameResponseSize], map[string]string{"endpoint": "/users"})
			So(size.GetHistogram().GetSampleSum(), ShouldEqual, 2048)

			So(families[metrics.NameHTTPErrors], ShouldBeNil)
		})

		Convey("A not found outcome counts an error and a 404", func() {
			gomock.InOrder(
				source.EXPECT().Pick(httpMethods).Return("POST"),
				source.EXPECT().Pick(httpEndpoints).Return("/auth"),
				source.EXPECT().Float64().Return(0.95),
				source.EXPECT().Float64().Return(0.2),
				source.EXPECT().UniformFloat(0.01, 0.1).Return(0.05),
				source.EXPECT().UniformInt(100, 50000).Return(512),
			)

			So(generator.GenerateHTTP(1), ShouldBeNil)

			families := parsePullFamilies(registry)
			errorsSeries := findSeries(families[metrics.NameHTTPErrors], map[string]string{"method": "POST", "endpoint": "/auth", "error_type": "not_found"})
			So(errorsSeries.GetCounter().GetValue(), ShouldEqual, 1)

			requests := findSeries(families[metrics.NameHTTPRequests], map[string]string{"method": "POST", "endpoint": "/auth", "status": "404"})
			So(requests.GetCounter().GetValue(), ShouldEqual, 1)
		})

		Convey("An internal error outcome counts an error and a 500", func() {
			gomock.InOrder(
				source.EXPECT().Pick(httpMethods).Return("GET"),
				source.EXPECT().Pick(httpEndpoints).Return("/orders"),
				source.EXPECT().Float64().Return(0.95),
				source.EXPECT().Float64().Return(0.7),
				source.EXPECT().UniformFloat(0.5, 5.0).Return(3.5),
				source.EXPECT().UniformInt(100, 50000).Return(512),
			)

			So(generator.GenerateHTTP(1), ShouldBeNil)

			families := parsePullFamilies(registry)
			errorsSeries := findSeries(families[metrics.NameHTTPErrors], map[string]string{"method": "GET", "endpoint": "/orders", "error_type": "internal_error"})
			So(errorsSeries.GetCounter().GetValue(), ShouldEqual, 1)

			duration := findSeries(families[metrics.NameHTTPDuration], map[string]string{"method": "GET", "endpoint": "/orders", "status": "500"})
			So(duration.GetHistogram().GetSampleSum(), ShouldEqual, 3.5)
		})
	})
}

func TestPullGeneratorGenerateDatabase(t *testing.T) {
	Convey("Given a pull generator over a scripted source", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		source := mock_metricsim.NewMockSource(mockCtrl)
		registry := metrics.NewPullRegistry()
		So(metrics.RegisterPullCatalog(registry), ShouldBeNil)
		generator := NewPullGenerator(registry, source)

		Convey("A select query observes the fast range", func() {
			gomock.InOrder(
				source.EXPECT().Pick(queryTypes).Return("SELECT"),
				source.EXPECT().Pick(queryTables).Return("users"),
				source.EXPECT().UniformFloat(0.001, 0.1).Return(0.02),
			)

			So(generator.GenerateDatabase(1), ShouldBeNil)

			families := parsePullFamilies(registry)
			series := findSeries(families[metrics.NameDBDuration], map[string]string{"query_type": "SELECT", "table": "users"})
			So(series.GetHistogram().GetSampleCount(), ShouldEqual, 1)
			So(series.GetHistogram().GetSampleSum(), ShouldEqual, 0.02)
		})

		Convey("A write query observes the slow range", func() {
			gomock.InOrder(
				source.EXPECT().Pick(queryTypes).Return("INSERT"),
				source.EXPECT().Pick(queryTables).Return("orders"),
				source.EXPECT().UniformFloat(0.005, 0.2).Return(0.15),
			)

			So(generator.GenerateDatabase(1), ShouldBeNil)

			families := parsePullFamilies(registry)
			series := findSeries(families[metrics.NameDBDuration], map[string]string{"query_type": "INSERT", "table": "orders"})
			So(series.GetHistogram().GetSampleSum(), ShouldEqual, 0.15)
		})
	})
}

func TestPullGeneratorSeededPass(t *testing.T) {
	Convey("A full pass writes the documented number of samples", t, func() {
		registry := metrics.NewPullRegistry()
		So(metrics.RegisterPullCatalog(registry), ShouldBeNil)
		generator := NewPullGenerator(registry, NewRandSource(42))

		report, err := generator.GenerateAll()
		So(err, ShouldBeNil)
		So(report.HTTPSamples, ShouldEqual, DefaultHTTPCount)
		So(report.DatabaseSamples, ShouldEqual, DefaultDatabaseCount)
		So(report.PayloadSamples, ShouldEqual, DefaultPayloadCount)
		So(report.BytesProcessed, ShouldBeBetweenOrEqual, 600000, 6000000)

		families := parsePullFamilies(registry)
		So(sumCounter(families[metrics.NameHTTPRequests]), ShouldEqual, DefaultHTTPCount)
		So(int(sumHistogramCount(families[metrics.NameHTTPDuration])), ShouldEqual, DefaultHTTPCount)
		So(int(sumHistogramCount(families[metrics.NameResponseSize])), ShouldEqual, DefaultHTTPCount)
		So(int(sumSummaryCount(families[metrics.NameRequestSummary])), ShouldEqual, DefaultHTTPCount)
		So(int(sumHistogramCount(families[metrics.NameDBDuration])), ShouldEqual, DefaultDatabaseCount)
		So(int(sumSummaryCount(families[metrics.NamePayloadSummary])), ShouldEqual, 2*DefaultPayloadCount)

		So(len(families[metrics.NameActiveConnections].GetMetric()), ShouldEqual, len(protocols))
		So(len(families[metrics.NameMemoryUsage].GetMetric()), ShouldEqual, len(memoryRegions))
		So(len(families[metrics.NameQueueSize].GetMetric()), ShouldEqual, len(queueNames))

		cpu := findSeries(families[metrics.NameCPUUsage], nil)
		So(cpu.GetGauge().GetValue(), ShouldBeBetween, 10, 90)

		So(sumCounter(families[metrics.NameBytesProcessed]), ShouldEqual, float64(report.BytesProcessed))
	})
}

func parsePullFamilies(registry *metrics.PullRegistry) map[string]*dto.MetricFamily {
	payload, err := registry.Serialize()
	So(err, ShouldBeNil)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(payload))
	So(err, ShouldBeNil)
	return families
}

// findSeries returns the series matching the labels exactly, or nil. Proto
// getters are nil-safe, so a missing series fails the value assertion instead
// of panicking.
func findSeries(family *dto.MetricFamily, labels map[string]string) *dto.Metric {
	for _, series := range family.GetMetric() {
		if len(series.GetLabel()) != len(labels) {
			continue
		}
		match := true
		for _, pair := range series.GetLabel() {
			if labels[pair.GetName()] != pair.GetValue() {
				match = false
				break
			}
		}
		if match {
			return series
		}
	}
	return nil
}

func sumCounter(family *dto.MetricFamily) float64 {
	total := 0.0
	for _, series := range family.GetMetric() {
		total += series.GetCounter().GetValue()
	}
	return total
}

func sumHistogramCount(family *dto.MetricFamily) uint64 {
	total := uint64(0)
	for _, series := range family.GetMetric() {
		total += series.GetHistogram().GetSampleCount()
	}
	return total
}

func sumSummaryCount(family *dto.MetricFamily) uint64 {
	total := uint64(0)
	for _, series := range family.GetMetric() {
		total += series.GetSummary().GetSampleCount()
	}
	return total
}
