package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/lestrrat-go/backoff"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thingful/twirp-go/pkg/logger"
	"github.com/thingful/twirp-go/pkg/server"
)

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringP("addr", "a", "0.0.0.0:8081", "Address to which the HTTP server binds")
	serverCmd.Flags().Bool("verbose", false, "Enable verbose output")
	serverCmd.Flags().StringSlice("domain", nil, "Domain(s) to request a TLS certificate for via Let's Encrypt; if unset the server runs over plain HTTP")

	viper.BindPFlag("addr", serverCmd.Flags().Lookup("addr"))
	viper.BindPFlag("verbose", serverCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("domain", serverCmd.Flags().Lookup("domain"))
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the Haberdasher reference service listening for Twirp requests",
	Long: `
Starts an HTTP server exposing the Haberdasher reference service over Twirp,
alongside a /pulse liveness endpoint and a /metrics Prometheus endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := viper.GetString("addr")
		if addr == "" {
			return errors.New("Must provide a bind address")
		}

		log := logger.NewLogger()

		config := &server.Config{
			ListenAddr: addr,
			Verbose:    viper.GetBool("verbose"),
			Domains:    viper.GetStringSlice("domain"),
		}

		executer := backoff.ExecuteFunc(func(_ context.Context) error {
			s := server.NewServer(config, log)
			return s.Start()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		policy := backoff.NewExponential()
		return backoff.Retry(ctx, policy, executer)
	},
}
