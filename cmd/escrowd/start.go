package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/timedescrow/app"
	"github.com/iov-one/timedescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	"github.com/tendermint/tendermint/libs/log"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the ABCI server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(homeDir(cmd), cmd)
			if err != nil {
				return err
			}
			return start(conf)
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	cmd.Flags().String(flagLogLevel, "info", "one of debug, info, error, none")
	cmd.Flags().String(flagMetricsAddr, "", "address to serve prometheus metrics on, empty to disable")
	return cmd
}

// newLogger returns the node logger filtered to given level.
func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "escrowd")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

func start(conf *Config) error {
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		return err
	}

	stack, err := app.Stack(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	escrowApp, err := app.Application(stack, conf.DB, conf.Debug)
	if err != nil {
		return err
	}
	escrowApp.WithLogger(logger.With("module", "app"))

	if conf.MetricsAddr != "" {
		go func() {
			logger.Info("Serving metrics", "addr", conf.MetricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(conf.MetricsAddr, mux); err != nil {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", escrowApp)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot start server: %s", err)
	}

	// Wait for a termination signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutting down")
	return svr.Stop()
}
