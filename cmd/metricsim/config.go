package main

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xiam/to"

	"github.com/metricsim/metricsim/cmd"
)

type metricsimConfig struct {
	API       cmd.APIConfig       `yaml:"api"`
	Telemetry cmd.TelemetryConfig `yaml:"telemetry"`
	Logger    cmd.LoggerConfig    `yaml:"log"`
	Pprof     cmd.ProfilerConfig  `yaml:"pprof"`
	// GracefulShutdownTimeout limits how long in-flight requests may drain on stop
	GracefulShutdownTimeout string `yaml:"graceful_shutdown_timeout"`
}

func getDefault() metricsimConfig {
	return metricsimConfig{
		API: cmd.APIConfig{
			Listen: ":8000",
		},
		Telemetry: cmd.TelemetryConfig{
			Resource: cmd.ResourceConfig{
				ServiceName:           "prometheus-metrics-app",
				ServiceVersion:        "1.2.3",
				ServiceInstanceID:     "instance-1",
				DeploymentEnvironment: "production",
			},
		},
		Logger: cmd.LoggerConfig{
			LogFile:         "stdout",
			LogLevel:        "info",
			LogPrettyFormat: false,
		},
		Pprof: cmd.ProfilerConfig{
			Listen: ":8091",
		},
		GracefulShutdownTimeout: "5s",
	}
}

func (config metricsimConfig) validate() error {
	validator := validator.New()
	return validator.Struct(config)
}

func (config metricsimConfig) gracefulShutdownTimeout() time.Duration {
	return to.Duration(config.GracefulShutdownTimeout)
}
