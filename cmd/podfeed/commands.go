// ABOUTME: Subcommands of the podfeed CLI
// ABOUTME: fetch retrieves a feed by URL, parse reads a local file, transports lists the chain

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"podfeed-api/core/transport"
	"podfeed-api/podfeed"
	"podfeed-api/pkg/utils/duration"
)

type globalOptions struct {
	verbose    bool
	proxyBase  string
	transports string
	direct     bool
}

// newClient builds a library client from the global flags
func (o *globalOptions) newClient(extra ...podfeed.Option) (*podfeed.Client, error) {
	var opts []podfeed.Option
	if o.verbose {
		opts = append(opts, podfeed.WithDefaultLogger())
	}

	switch {
	case o.direct:
		opts = append(opts, podfeed.WithStrategies(transport.DirectStrategy()), podfeed.WithBackoff(0))
	case o.transports != "":
		chain, err := transport.LoadChain(o.transports)
		if err != nil {
			return nil, err
		}
		opts = append(opts, podfeed.WithStrategies(chain.Build()...))
		if chain.Backoff > 0 {
			opts = append(opts, podfeed.WithBackoff(chain.Backoff))
		}
	case o.proxyBase != "":
		opts = append(opts, podfeed.WithProxyBaseURL(o.proxyBase))
	}

	return podfeed.NewClient(append(opts, extra...)...)
}

func fetchCmd(global *globalOptions) *cobra.Command {
	var (
		cacheBust string
		page      int
		limit     int
		asJSON    bool
		noEnrich  bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Fetch, parse and enrich a feed",
		Long: `Fetch a feed through the transport chain, parse it and resolve its
podroll and publisher references.

Examples:
  podfeed fetch https://example.com/feed.xml
  podfeed fetch https://example.com/feed.xml --limit 5 --page 2
  podfeed fetch https://example.com/feed.xml --json --no-enrich`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []podfeed.Option
			if noEnrich {
				extra = append(extra, podfeed.WithoutEnrichment())
			}
			client, err := global.newClient(extra...)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			feedOpts := []podfeed.FeedOption{podfeed.WithCacheBust(cacheBust)}
			if limit > 0 {
				feedOpts = append(feedOpts, podfeed.WithPagination(page, limit))
			}

			feed, err := client.FetchAndParseFeed(ctx, args[0], feedOpts...)
			if err != nil {
				return fmt.Errorf("fetch failed: %w", err)
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), feed)
			}
			return outputHuman(cmd.OutOrStdout(), feed)
		},
	}

	cmd.Flags().StringVar(&cacheBust, "cache", "", "cache-bust token")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "episode page (with --limit)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "episodes per page; 0 shows all")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "skip podroll and publisher lookups")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall deadline")

	return cmd
}

func parseCmd(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a local RSS file without fetching or enrichment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client, err := global.newClient(podfeed.WithoutEnrichment())
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			feed, err := client.ParseFeed(string(data))
			if err != nil {
				return fmt.Errorf("parse failed: %w", err)
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), feed)
			}
			return outputHuman(cmd.OutOrStdout(), feed)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func transportsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transports",
		Short: "List the transport strategies in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := global.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			for i, name := range client.Strategies() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func outputJSON(w io.Writer, feed *podfeed.Feed) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(feed)
}

func outputHuman(w io.Writer, feed *podfeed.Feed) error {
	if feed.Placeholder {
		fmt.Fprintf(w, "%s\n%s\n", feed.Title, feed.Description)
		return nil
	}

	fmt.Fprintf(w, "%s\n", feed.Title)
	if feed.Author != "" {
		fmt.Fprintf(w, "by %s\n", feed.Author)
	}
	if feed.Medium != "" {
		fmt.Fprintf(w, "medium: %s\n", feed.Medium)
	}

	fmt.Fprintf(w, "\nEpisodes (%d):\n", len(feed.Episodes))
	for i, ep := range feed.Episodes {
		line := fmt.Sprintf("%d. %s", i+1, ep.Title)
		if ep.Duration != "" {
			line += " [" + duration.Normalize(ep.Duration) + "]"
		}
		fmt.Fprintln(w, line)
	}

	if feed.Value != nil && len(feed.Value.Recipients) > 0 {
		fmt.Fprintf(w, "\nValue (%s, splits total %d):\n", feed.Value.Type, feed.Value.TotalSplit())
		for _, r := range feed.Value.PaymentRecipients() {
			fmt.Fprintf(w, "  %s %d%%\n", r.Name, r.Split)
		}
	}

	if len(feed.Podroll) > 0 {
		fmt.Fprintf(w, "\nPodroll (%d):\n", len(feed.Podroll))
		for _, item := range feed.Podroll {
			fmt.Fprintf(w, "  %s\n", item.Title)
		}
	}

	if len(feed.PublisherAlbums) > 0 {
		fmt.Fprintf(w, "\nAlbums (%d):\n", len(feed.PublisherAlbums))
		for _, item := range feed.PublisherAlbums {
			fmt.Fprintf(w, "  %s\n", item.Title)
		}
	}

	if feed.Funding != nil {
		fmt.Fprintf(w, "\n%s: %s\n", feed.Funding.Message, feed.Funding.URL)
	}
	return nil
}
