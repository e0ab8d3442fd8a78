package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "document",
		Short:        "Document store with upsert and multi-criteria search",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.String("host", "", "listen host (SERVER_HOST)")
	f.String("port", "", "listen port (SERVER_PORT)")
	f.String("backend", "", "store backend: memory, redis or mongo (STORE_BACKEND)")
	f.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	// flags win over env when set
	_ = viper.BindPFlag("SERVER_HOST", f.Lookup("host"))
	_ = viper.BindPFlag("SERVER_PORT", f.Lookup("port"))
	_ = viper.BindPFlag("STORE_BACKEND", f.Lookup("backend"))
	_ = viper.BindPFlag("LOG_LEVEL", f.Lookup("log-level"))
	return cmd
}
