package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/metricsim/metricsim/api"
	"github.com/metricsim/metricsim/metrics"
)

// APIConfig is http server settings that initialise at the start of metricsim.
type APIConfig struct {
	// Listening address, format: [host]:port
	Listen string `yaml:"listen" validate:"required"`
	// If true, cross-origin requests are allowed from any origin
	EnableCORS bool `yaml:"enable_cors"`
}

// GetSettings returns api config parsed from the metricsim config file.
func (config *APIConfig) GetSettings() *api.Config {
	return &api.Config{
		Listen:     config.Listen,
		EnableCORS: config.EnableCORS,
	}
}

// TelemetryConfig is synthetic telemetry settings.
type TelemetryConfig struct {
	// Seed for the random source. Zero means seed from the current time,
	// any other value makes generation runs reproducible.
	Seed int64 `yaml:"seed"`
	// Resource identifies the simulated service in the otel registry
	Resource ResourceConfig `yaml:"resource"`
}

// ResourceConfig is the otel resource identity of the simulated service.
type ResourceConfig struct {
	ServiceName    string `yaml:"service_name" validate:"required"`
	ServiceVersion string `yaml:"service_version" validate:"required"`
	// ServiceInstanceID may be left empty to get a generated one
	ServiceInstanceID     string `yaml:"service_instance_id"`
	DeploymentEnvironment string `yaml:"deployment_environment" validate:"required"`
}

// GetSettings returns resource config parsed from the metricsim config file.
func (config *ResourceConfig) GetSettings() metrics.ResourceConfig {
	return metrics.ResourceConfig{
		ServiceName:           config.ServiceName,
		ServiceVersion:        config.ServiceVersion,
		ServiceInstanceID:     config.ServiceInstanceID,
		DeploymentEnvironment: config.DeploymentEnvironment,
	}
}

// LoggerConfig is logger settings structure that initialises at the start of metricsim.
type LoggerConfig struct {
	LogFile         string `yaml:"log_file"`
	LogLevel        string `yaml:"log_level"`
	LogPrettyFormat bool   `yaml:"log_pretty_format"`
}

// ProfilerConfig is pprof settings structure that initialises at the start of metricsim.
type ProfilerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// ReadConfig parses config file by the given path into metricsim-used type
func ReadConfig(configFileName string, config interface{}) error {
	configYaml, err := os.ReadFile(configFileName)
	if err != nil {
		return fmt.Errorf("can't read file [%s] [%s]", configFileName, err.Error())
	}
	err = yaml.Unmarshal(configYaml, config)
	if err != nil {
		return fmt.Errorf("can't parse config file [%s] [%s]", configFileName, err.Error())
	}
	return nil
}

// PrintConfig prints config to stdout
func PrintConfig(config interface{}) {
	d, _ := yaml.Marshal(&config)
	fmt.Println(string(d))
}
