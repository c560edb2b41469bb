package cmd

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/metricsim/metricsim/api"
	"github.com/metricsim/metricsim/metrics"
)

func TestAPIConfig(t *testing.T) {
	Convey("Test APIConfig.GetSettings", t, func() {
		Convey("With empty config", func() {
			apiCfg := APIConfig{}

			expected := &api.Config{}
			So(apiCfg.GetSettings(), ShouldResemble, expected)
		})

		Convey("With filled config", func() {
			apiCfg := APIConfig{
				Listen:     ":8000",
				EnableCORS: true,
			}

			expected := &api.Config{
				Listen:     ":8000",
				EnableCORS: true,
			}
			So(apiCfg.GetSettings(), ShouldResemble, expected)
		})
	})
}

func TestResourceConfig(t *testing.T) {
	Convey("Test ResourceConfig.GetSettings", t, func() {
		Convey("With filled config", func() {
			resourceCfg := ResourceConfig{
				ServiceName:           "prometheus-metrics-app",
				ServiceVersion:        "1.2.3",
				ServiceInstanceID:     "instance-1",
				DeploymentEnvironment: "production",
			}

			expected := metrics.ResourceConfig{
				ServiceName:           "prometheus-metrics-app",
				ServiceVersion:        "1.2.3",
				ServiceInstanceID:     "instance-1",
				DeploymentEnvironment: "production",
			}
			So(resourceCfg.GetSettings(), ShouldResemble, expected)
		})
	})
}

func TestReadConfig(t *testing.T) {
	Convey("Test ReadConfig", t, func() {
		Convey("With missing file", func() {
			var config TelemetryConfig
			err := ReadConfig("a-missing-file.yml", &config)
			So(err, ShouldNotBeNil)
		})

		Convey("With invalid yaml", func() {
			path := filepath.Join(t.TempDir(), "metricsim.yml")
			So(os.WriteFile(path, []byte("seed: [broken"), 0644), ShouldBeNil)

			var config TelemetryConfig
			So(ReadConfig(path, &config), ShouldNotBeNil)
		})

		Convey("With valid file", func() {
			path := filepath.Join(t.TempDir(), "metricsim.yml")
			content := []byte("seed: 17\nresource:\n  service_name: demo\n  service_version: 0.1.0\n")
			So(os.WriteFile(path, content, 0644), ShouldBeNil)

			var config TelemetryConfig
			So(ReadConfig(path, &config), ShouldBeNil)
			So(config.Seed, ShouldEqual, 17)
			So(config.Resource.ServiceName, ShouldEqual, "demo")
			So(config.Resource.ServiceVersion, ShouldEqual, "0.1.0")
		})
	})
}
