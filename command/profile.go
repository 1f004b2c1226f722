package command

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// InitializePprofServer serves the runtime profiles when the pprof flag is set
func InitializePprofServer(cmd *cobra.Command, logger hclog.Logger) {
	if flag := cmd.Flag(PprofFlag); flag != nil && flag.Changed {
		address := cmd.Flag(PprofAddressFlag).Value.String()

		logger.Info("running pprof server", "address", address)

		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		mux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
		mux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
		mux.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
		mux.Handle("/debug/pprof/block", pprof.Handler("block"))
		mux.Handle("/debug/pprof/mutex", pprof.Handler("mutex"))

		pprofSvr := &http.Server{
			Addr:              address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := pprofSvr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("failure in running pprof server", "err", err)
			}
		}()
	}
}
