package cmd

import (
	"net/http"
	"net/http/pprof"

	"github.com/metricsim/metricsim"
)

// StartProfiling serves the net/http/pprof handlers on their own listener.
// Best effort: a failure to bind only logs.
func StartProfiling(logger metricsim.Logger, config ProfilerConfig) {
	serverMux := http.NewServeMux()
	serverMux.HandleFunc("/pprof/", pprof.Index)
	serverMux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	serverMux.HandleFunc("/pprof/profile", pprof.Profile)
	serverMux.HandleFunc("/pprof/symbol", pprof.Symbol)
	serverMux.HandleFunc("/pprof/trace", pprof.Trace)
	serverMux.HandleFunc("/pprof/heap", pprof.Handler("heap").ServeHTTP)
	serverMux.HandleFunc("/pprof/goroutine", pprof.Handler("goroutine").ServeHTTP)

	go func() {
		err := http.ListenAndServe(config.Listen, serverMux)
		if err != nil {
			logger.Infof("Can't start pprof server: %v", err)
		}
	}()
}
