// ABOUTME: Command line client for fetching and inspecting podcast feeds
// ABOUTME: Runs the same transport, parse and enrichment pipeline as the HTTP API

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "podfeed",
		Short:         "Fetch and parse podcast-namespace RSS feeds",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log transport warnings to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.proxyBase, "proxy-base", "", "base URL of a podfeed API to use as the first transport")
	rootCmd.PersistentFlags().StringVar(&opts.transports, "transports", "", "YAML file describing the transport chain")
	rootCmd.PersistentFlags().BoolVar(&opts.direct, "direct", false, "skip proxies and fetch feeds from their origin")

	rootCmd.AddCommand(fetchCmd(opts))
	rootCmd.AddCommand(parseCmd(opts))
	rootCmd.AddCommand(transportsCmd(opts))

	return rootCmd
}
