package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/pkg/web"
)

func serveCmd() *cobra.Command {
	var (
		host     string
		port     int
		certFile string
		keyFile  string
		logFile  string
		open     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive comparison page",
		Long: `Start the web server for the interactive comparison.

The server exposes the following endpoints:
  /                 comparison page
  /api/records      dataset JSON
  /api/chart        chart configuration and rows
  /api/chart.svg    rendered bar chart
  /ws               live session (selection, metric, animation)
  /health           health check endpoint

Examples:
  # Serve on localhost:8080 and open a browser
  memcmp serve --open

  # Serve on all interfaces with TLS
  memcmp serve --host 0.0.0.0 --port 8443 --cert server.pem --key server.key

  # Using environment variables (also read from .env)
  export MEMCMP_PORT=9090
  memcmp serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := web.ConfigFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				config.Host = host
			}
			if cmd.Flags().Changed("port") {
				config.Port = port
			}
			if cmd.Flags().Changed("log-file") {
				config.LogFile = logFile
			}
			config.CertFile = certFile
			config.KeyFile = keyFile

			server, err := web.NewServer(config)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			if err := server.Listen(); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Start()
			}()

			url := server.URL()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving GPU memory comparison at %s\n", url)
			if open {
				if err := browser.OpenURL(url); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\n", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nPress Ctrl+C to stop...")

			select {
			case sig := <-sigChan:
				fmt.Fprintf(cmd.OutOrStdout(), "\nReceived signal: %v\n", sig)
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown error: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Server stopped gracefully")
				return nil

			case err := <-errChan:
				return err
			}
		},
	}

	defaults := web.DefaultConfig()
	cmd.Flags().StringVar(&host, "host", defaults.Host, "Host to bind (env "+web.EnvHost+")")
	cmd.Flags().IntVar(&port, "port", defaults.Port, "Port to listen on (env "+web.EnvPort+")")
	cmd.Flags().StringVar(&certFile, "cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&keyFile, "key", "", "TLS private key file")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write request logs to this file (env "+web.EnvLogFile+")")
	cmd.Flags().BoolVar(&open, "open", false, "Open the page in the system browser")

	return cmd
}
