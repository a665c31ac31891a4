// ABOUTME: Cross-feed resolver enriches podroll items and publisher albums from the feeds they reference
// ABOUTME: Fans out with bounded concurrency and a settled join so one failed lookup never affects the others

package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"podfeed-api/core/domain"
	"podfeed-api/core/interfaces"
)

const (
	// DefaultTimeout bounds each referenced feed lookup
	DefaultTimeout = 3 * time.Second

	// DefaultConcurrency caps parallel lookups per feed
	DefaultConcurrency = 8

	// UnknownAlbum titles an album whose feed could not be resolved
	UnknownAlbum = "Unknown Album"

	imageProxyHost = "images.weserv.nl"
)

// Metric kinds reported through interfaces.Metrics
const (
	KindPodroll = "podroll"
	KindAlbum   = "album"
)

// FallbackImages rotate across podroll items that end up without artwork
var FallbackImages = []string{
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f&w=300&h=300&fit=crop&auto=format",
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1471478331149-c72f17e33c73&w=300&h=300&fit=crop&auto=format",
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f&w=300&h=300&fit=crop&auto=format",
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1544947950-fa07a98d237f&w=300&h=300&fit=crop&auto=format",
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f&w=300&h=300&fit=crop&auto=format",
	"https://images.weserv.nl/?url=https://images.unsplash.com/photo-1571330735066-03aaa9429d89&w=300&h=300&fit=crop&auto=format",
}

// FeedSource fetches and parses a referenced feed without enriching it further
type FeedSource interface {
	FetchReferencedFeed(ctx context.Context, feedURL string) (*domain.ParsedFeed, error)
}

// Resolver performs depth-1 cross-feed enrichment
type Resolver struct {
	source      FeedSource
	logger      interfaces.Logger
	metrics     interfaces.Metrics
	timeout     time.Duration
	concurrency int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithTimeout sets the per-lookup timeout
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithConcurrency sets the maximum number of parallel lookups
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a resolver over source
func New(source FeedSource, logger interfaces.Logger, metrics interfaces.Metrics, opts ...Option) *Resolver {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	r := &Resolver{
		source:      source,
		logger:      logger,
		metrics:     metrics,
		timeout:     DefaultTimeout,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enrich resolves the podroll and publisher albums of feed in place. Failures
// are absorbed; only the feed's own references are followed.
func (r *Resolver) Enrich(ctx context.Context, feed *domain.ParsedFeed) {
	if feed == nil || !feed.HasCrossFeedReferences() {
		return
	}
	if len(feed.Podroll) > 0 {
		feed.Podroll = r.ResolvePodroll(ctx, feed.Podroll)
	}
	if len(feed.PublisherAlbums) > 0 {
		feed.PublisherAlbums = r.ResolvePublisherAlbums(ctx, feed.PublisherAlbums)
	}
}

// ResolvePodroll fills artwork, and any empty title, author or description,
// from each item's referenced feed. Order is preserved.
func (r *Resolver) ResolvePodroll(ctx context.Context, items []domain.PodRollItem) []domain.PodRollItem {
	resolved := make([]domain.PodRollItem, len(items))
	copy(resolved, items)

	fetched := r.fanOut(ctx, KindPodroll, items)

	for i := range resolved {
		item := &resolved[i]
		if remote := fetched[i]; remote != nil {
			if art := remoteArtwork(remote); art != "" {
				item.Image = art
			}
			if item.Title == "" {
				item.Title = remote.Title
			}
			if item.Author == "" {
				item.Author = remote.Author
			}
			if item.Description == "" {
				item.Description = remote.Description
			}
		}
		if item.Image == "" {
			item.Image = FallbackImages[item.Position%len(FallbackImages)]
		}
	}
	return resolved
}

// ResolvePublisherAlbums replaces each album's details with those of its feed.
// An album that cannot be resolved is titled from its URL.
func (r *Resolver) ResolvePublisherAlbums(ctx context.Context, albums []domain.PodRollItem) []domain.PodRollItem {
	fetched := r.fanOut(ctx, KindAlbum, albums)

	resolved := make([]domain.PodRollItem, len(albums))
	for i, album := range albums {
		out := domain.PodRollItem{FeedGUID: album.FeedGUID, FeedURL: album.FeedURL}
		if remote := fetched[i]; remote != nil {
			out.Title = firstNonEmpty(remote.Title, UnknownAlbum)
			out.Description = remote.Description
			out.Image = remote.Image
			out.Author = remote.Author
		} else {
			out.Title = AlbumTitleFromURL(album.FeedURL)
		}
		resolved[i] = out
	}
	return resolved
}

// fanOut looks up every item with a feed URL and returns the parsed feeds by
// index. Entries are nil where the lookup failed or was skipped. Goroutines
// never return errors so every lookup runs to completion.
func (r *Resolver) fanOut(ctx context.Context, kind string, items []domain.PodRollItem) []*domain.ParsedFeed {
	results := make([]*domain.ParsedFeed, len(items))
	if r.source == nil {
		return results
	}

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, item := range items {
		if item.FeedURL == "" {
			continue
		}
		i, feedURL := i, item.FeedURL
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			feed, err := r.lookup(ctx, feedURL)
			if ctx.Err() != nil {
				// Results that land after the caller gave up are discarded.
				return nil
			}
			r.record(kind, err == nil)
			if err != nil {
				r.logger.Warn("Cross-feed lookup failed", map[string]interface{}{
					"kind":  kind,
					"url":   feedURL,
					"error": err.Error(),
				})
				return nil
			}
			results[i] = feed
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *Resolver) lookup(ctx context.Context, feedURL string) (*domain.ParsedFeed, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	feed, err := r.source.FetchReferencedFeed(lookupCtx, feedURL)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, fmt.Errorf("no feed returned for %s", feedURL)
	}
	if feed.Placeholder {
		return nil, fmt.Errorf("referenced feed unavailable: %s", feed.Title)
	}
	return feed, nil
}

func (r *Resolver) record(kind string, success bool) {
	if r.metrics != nil {
		r.metrics.EnrichmentResult(kind, success)
	}
}

// remoteArtwork picks the referenced feed's channel art, else its first
// episode's art, routed through the image proxy.
func remoteArtwork(feed *domain.ParsedFeed) string {
	art := feed.Image
	if art == "" && len(feed.Episodes) > 0 {
		art = feed.Episodes[0].Image
	}
	return ProxyImage(art)
}

// ProxyImage rewrites http(s) artwork to a 300x300 crop served by the image
// proxy. Empty, non-http and already proxied URLs are returned unchanged.
func ProxyImage(image string) string {
	if !strings.HasPrefix(image, "http") || strings.Contains(image, imageProxyHost) {
		return image
	}
	return "https://" + imageProxyHost + "/?url=" + url.QueryEscape(image) + "&w=300&h=300&fit=crop&auto=format"
}

// AlbumTitleFromURL derives a display title from the last path segment of an
// album feed URL, without its .xml suffix.
func AlbumTitleFromURL(feedURL string) string {
	if feedURL == "" {
		return UnknownAlbum
	}
	trimmed := feedURL
	if u, err := url.Parse(feedURL); err == nil && u.Path != "" {
		trimmed = u.Path
	}
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	segment = strings.Replace(segment, ".xml", "", 1)
	return firstNonEmpty(segment, UnknownAlbum)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
