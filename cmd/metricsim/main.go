package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/uuid"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/metricsim/metricsim/api/handler"
	"github.com/metricsim/metricsim/clock"
	"github.com/metricsim/metricsim/cmd"
	"github.com/metricsim/metricsim/generator"
	logging "github.com/metricsim/metricsim/logging/zerolog_adapter"
	"github.com/metricsim/metricsim/metrics"
)

const serviceName = "metricsim"

var (
	configFileName         = flag.String("config", "/etc/metricsim/metricsim.yml", "Path to configuration file")
	printVersion           = flag.Bool("version", false, "Print version and exit")
	printDefaultConfigFlag = flag.Bool("default-config", false, "Print default config and exit")
)

// Metricsim bin version
var (
	MetricsimVersion = "unknown"
	GitCommit        = "unknown"
	GoVersion        = "unknown"
)

func main() {
	flag.Parse()
	if *printVersion {
		fmt.Println("Metricsim")
		fmt.Println("Version:", MetricsimVersion)
		fmt.Println("Git Commit:", GitCommit)
		fmt.Println("Go Version:", GoVersion)
		os.Exit(0)
	}

	config := getDefault()
	if *printDefaultConfigFlag {
		cmd.PrintConfig(config)
		os.Exit(0)
	}

	if err := cmd.ReadConfig(*configFileName, &config); err != nil {
		fmt.Fprintf(os.Stderr, "Can not read settings: %s\n", err.Error())
		os.Exit(1)
	}
	if err := config.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err.Error())
		os.Exit(1)
	}

	logger, err := logging.ConfigureLog(config.Logger.LogFile, config.Logger.LogLevel, serviceName, config.Logger.LogPrettyFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can not configure log: %s\n", err.Error())
		os.Exit(1)
	}

	if _, err = maxprocs.Set(maxprocs.Logger(logger.Infof)); err != nil {
		logger.Warningf("Can't set GOMAXPROCS: %v", err)
	}

	if config.Pprof.Enabled {
		cmd.StartProfiling(logger, config.Pprof)
	}

	seed := config.Telemetry.Seed
	if seed == 0 {
		seed = clock.NewSystemClock().NowUnix()
	}
	source := generator.NewRandSource(seed)

	resourceConfig := config.Telemetry.Resource.GetSettings()
	if resourceConfig.ServiceInstanceID == "" {
		instanceID, uuidErr := uuid.NewV4()
		if uuidErr != nil {
			logger.Fatalf("Can not generate instance id: %s", uuidErr.Error())
		}
		resourceConfig.ServiceInstanceID = instanceID.String()
	}

	pullRegistry := metrics.NewPullRegistry()
	snapshot := metrics.NewSystemSnapshot()
	pushRegistry := metrics.NewPushRegistry(resourceConfig, snapshot)

	if err = metrics.RegisterPullCatalog(pullRegistry); err != nil {
		logger.Fatalf("Can not register prometheus metrics: %s", err.Error())
	}
	if err = metrics.RegisterPushCatalog(pushRegistry); err != nil {
		logger.Fatalf("Can not register otel metrics: %s", err.Error())
	}
	if err = pullRegistry.SetState(metrics.NameAppState, metrics.StateRunning); err != nil {
		logger.Fatalf("Can not set application state: %s", err.Error())
	}

	pullGenerator := generator.NewPullGenerator(pullRegistry, source)
	pushGenerator := generator.NewPushGenerator(pushRegistry, snapshot, source)

	// Baseline system metrics so the exposition routes have data before the
	// first generation request.
	if _, err = pullGenerator.GenerateSystem(); err != nil {
		logger.Fatalf("Can not generate system metrics: %s", err.Error())
	}
	if _, err = pushGenerator.GenerateSystem(context.Background()); err != nil {
		logger.Fatalf("Can not generate otel system metrics: %s", err.Error())
	}

	apiConfig := config.API.GetSettings()
	listener, err := net.Listen("tcp", apiConfig.Listen)
	if err != nil {
		logger.Fatalf("Can not start listen: %s", err.Error())
	}

	httpHandler := handler.NewHandler(logger, pullRegistry, pushRegistry, pullGenerator, pushGenerator, apiConfig)
	server := &http.Server{Handler: httpHandler}

	go func() {
		server.Serve(listener) //nolint
	}()

	host := apiConfig.ViewHost()
	logger.Infof("Start listening by address: [%s]", apiConfig.Listen)
	logger.Infof("Home:                  http://%s/", host)
	logger.Infof("Generate metrics:      http://%s/generatemetrics", host)
	logger.Infof("View metrics:          http://%s/metrics", host)
	logger.Infof("Generate OTEL metrics: http://%s/generateotelmetrics", host)
	logger.Infof("View OTEL metrics:     http://%s/otelmetrics", host)
	logger.Infof("Metricsim Started (version: %s)", MetricsimVersion)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	logger.Info(fmt.Sprint(<-ch))
	logger.Infof("Metricsim shutting down.")

	if err = pullRegistry.SetState(metrics.NameAppState, metrics.StateShuttingDown); err != nil {
		logger.Errorf("Can not set application state: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.gracefulShutdownTimeout())
	defer cancel()
	if err = server.Shutdown(ctx); err != nil {
		logger.Errorf("Can't stop server correctly: %v", err)
	}
	if err = pushRegistry.Shutdown(ctx); err != nil {
		logger.Errorf("Can't stop otel meter provider correctly: %v", err)
	}
	logger.Infof("Metricsim Stopped. Version: %s", MetricsimVersion)
}
