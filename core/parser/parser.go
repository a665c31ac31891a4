// ABOUTME: RSS parser for podcast-namespace feeds built on xmlquery
// ABOUTME: Turns raw feed XML into a domain.ParsedFeed with value, podroll and episode data

package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"podfeed-api/core/domain"
	"podfeed-api/core/errors"
	"podfeed-api/core/interfaces"
)

// Parser converts feed XML into ParsedFeed values
type Parser struct {
	logger  interfaces.Logger
	metrics interfaces.Metrics
}

// NewParser creates a parser. Both arguments may be nil.
func NewParser(logger interfaces.Logger, metrics interfaces.Metrics) *Parser {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Parser{logger: logger, metrics: metrics}
}

// ParseFeed parses xmlText with a parser that neither logs nor records metrics
func ParseFeed(xmlText string) (*domain.ParsedFeed, error) {
	return NewParser(nil, nil).ParseFeed(xmlText)
}

// ParseFeed parses one RSS document. Broken XML yields a MalformedXMLError and
// a document without a channel yields a MissingChannelError.
func (p *Parser) ParseFeed(xmlText string) (*domain.ParsedFeed, error) {
	doc, err := xmlquery.ParseWithOptions(strings.NewReader(xmlText), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        xml.HTMLEntity,
			CharsetReader: charset.NewReaderLabel,
		},
	})
	if err != nil {
		return nil, &errors.MalformedXMLError{Cause: err}
	}
	if !hasRootElement(doc) {
		return nil, &errors.MalformedXMLError{Cause: fmt.Errorf("document has no root element")}
	}

	channel := within(doc).first("channel")
	if channel == nil {
		return nil, &errors.MissingChannelError{DetectedType: DetectFeedType(xmlText)}
	}

	ch := channelScope(channel)
	feed := &domain.ParsedFeed{
		Title:         ch.text("title"),
		Description:   ch.text("description"),
		Link:          ch.text("link"),
		Image:         channelImage(ch),
		Author:        channelAuthor(ch),
		Publisher:     ch.text("podcast:publisher"),
		Medium:        textOf(ch.fuzzy("podcast:medium")),
		PublisherFeed: parsePublisherFeed(ch),
		Podroll:       parsePodroll(ch),
		Funding:       parseFunding(ch),
		Episodes:      []domain.ParsedEpisode{},
	}

	var dropped int
	feed.Value, dropped = parseValueBlock(ch)

	if feed.IsPublisher() {
		feed.PublisherAlbums = parsePublisherAlbums(ch)
	}

	for _, item := range p.items(channel) {
		episode, itemDropped := parseEpisode(item)
		dropped += itemDropped
		feed.Episodes = append(feed.Episodes, episode)
	}

	if dropped > 0 {
		p.logger.Warn("Dropped invalid value recipients", map[string]interface{}{
			"feed_title": feed.Title,
			"dropped":    dropped,
		})
		if p.metrics != nil {
			p.metrics.RecipientsDropped(dropped)
		}
	}

	p.logger.Debug("Parsed feed", map[string]interface{}{
		"title":       feed.Title,
		"episodes":    len(feed.Episodes),
		"has_value":   feed.Value != nil,
		"podroll":     len(feed.Podroll),
		"publisher":   feed.IsPublisher(),
		"albums":      len(feed.PublisherAlbums),
		"has_funding": feed.Funding != nil,
	})

	return feed, nil
}

// hasRootElement reports whether the parsed document holds at least one element
func hasRootElement(doc *xmlquery.Node) bool {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

// items returns the channel's items. RSS 1.0 documents keep items next to the
// channel rather than inside it, so the channel's parent is searched as a fallback.
func (p *Parser) items(channel *xmlquery.Node) []*xmlquery.Node {
	if items := within(channel).all("item"); len(items) > 0 {
		return items
	}
	if channel.Parent != nil {
		return within(channel.Parent).all("item")
	}
	return nil
}

func parseEpisode(item *xmlquery.Node) (domain.ParsedEpisode, int) {
	s := within(item)
	episode := domain.ParsedEpisode{
		Title:       s.text("title"),
		Description: s.text("description"),
		Link:        s.text("link"),
		GUID:        s.text("guid"),
		PubDate:     s.text("pubDate"),
		Duration:    textOf(s.fuzzy("itunes:duration")),
		Image:       episodeImage(s),
		Publisher:   s.text("podcast:publisher"),
	}

	if enc := s.first("enclosure"); enc != nil {
		episode.Enclosure = &domain.Enclosure{
			URL:  attrOf(enc, "url"),
			Type: attrOf(enc, "type"),
		}
		if n, err := strconv.ParseInt(attrOf(enc, "length"), 10, 64); err == nil && n > 0 {
			episode.Enclosure.Length = n
		}
	}

	var dropped int
	episode.Value, dropped = parseValueBlock(s)
	return episode, dropped
}

// DetectFeedType names the syndication format of a document: "rss", "atom",
// "json" or "unknown".
func DetectFeedType(text string) string {
	switch gofeed.DetectFeedType(strings.NewReader(text)) {
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}
