package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/pkg/web"
)

func certCmd() *cobra.Command {
	var (
		dir   string
		hosts []string
	)

	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Generate a self-signed TLS certificate for serve",
		Long: `Generate a self-signed certificate and key for local HTTPS.

Examples:
  memcmp cert --dir certs
  memcmp serve --cert certs/server.pem --key certs/server-key.pem`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			certPath, keyPath, err := web.GenerateSelfSigned(dir, hosts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Certificate: %s\n", certPath)
			fmt.Fprintf(out, "Key:         %s\n", keyPath)
			fmt.Fprintf(out, "\nUsage:\n  memcmp serve --cert %s --key %s\n", certPath, keyPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "certs", "Output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "Host names or IPs the certificate is valid for")

	return cmd
}
