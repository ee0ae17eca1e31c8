package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/llm"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/ratelimit"
	"github.com/abhisek/curio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg := server.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("server config: %w", err)
		}

		// LLM calls are recorded in the local store.
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		backend, err := ratelimit.NewBackend(ctx, ratelimit.ConfigFromEnv())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: rate limiter backend unavailable, using in-process limits: %v\n", err)
			backend = ratelimit.NewMemoryBackend()
		}
		if c, ok := backend.(io.Closer); ok {
			defer c.Close()
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := server.New(cfg, server.Deps{
			Questions: problemgen.New(provider, problemgen.DefaultConfig()),
			Explorer:  explore.New(provider, explore.DefaultConfig()),
			Limiter:   ratelimit.New(backend),
			Registry:  reg,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CURIO_LISTEN_ADDR env var)")
}
