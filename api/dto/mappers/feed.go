// ABOUTME: Mappers for converting parsed feeds into API DTOs
// ABOUTME: Adds plain-text descriptions, parsed durations and RFC 3339 publish dates

package mappers

import (
	"podfeed-api/api/dto/responses"
	"podfeed-api/core/domain"
	"podfeed-api/pkg/utils/duration"
	"podfeed-api/pkg/utils/html"
	utiltime "podfeed-api/pkg/utils/time"
)

// ToFeedResponse converts a parsed feed to its response DTO
func ToFeedResponse(feed *domain.ParsedFeed) *responses.FeedResponse {
	if feed == nil {
		return nil
	}

	response := &responses.FeedResponse{
		Title:           feed.Title,
		Description:     feed.Description,
		DescriptionText: plainText(feed.Description),
		Link:            feed.Link,
		Image:           feed.Image,
		Author:          feed.Author,
		Publisher:       feed.Publisher,
		Medium:          feed.Medium,
		PublisherFeed:   feed.PublisherFeed,
		Value:           ToValueResponse(feed.Value),
		Podroll:         feed.Podroll,
		Funding:         feed.Funding,
		Episodes:        make([]responses.EpisodeResponse, 0, len(feed.Episodes)),
		PublisherAlbums: feed.PublisherAlbums,
		Placeholder:     feed.Placeholder,
	}

	for i := range feed.Episodes {
		response.Episodes = append(response.Episodes, ToEpisodeResponse(&feed.Episodes[i]))
	}

	return response
}

// ToEpisodeResponse converts one episode
func ToEpisodeResponse(ep *domain.ParsedEpisode) responses.EpisodeResponse {
	out := responses.EpisodeResponse{
		Title:           ep.Title,
		Description:     ep.Description,
		DescriptionText: plainText(ep.Description),
		Link:            ep.Link,
		GUID:            ep.GUID,
		PubDate:         ep.PubDate,
		PublishedAt:     utiltime.RFC3339(ep.PubDate),
		Duration:        ep.Duration,
		Image:           ep.Image,
		Publisher:       ep.Publisher,
		Enclosure:       ep.Enclosure,
		Value:           ToValueResponse(ep.Value),
	}
	if secs, ok := duration.Seconds(ep.Duration); ok {
		out.DurationSeconds = &secs
	}
	return out
}

// ToValueResponse converts a value block; nil stays nil
func ToValueResponse(v *domain.ValueBlock) *responses.ValueResponse {
	if v == nil {
		return nil
	}
	return &responses.ValueResponse{
		Type:           v.Type,
		Method:         v.Method,
		Suggested:      v.Suggested,
		Recipients:     v.Recipients,
		TotalSplit:     v.TotalSplit(),
		SplitsBalanced: v.SplitsBalanced(),
	}
}

// plainText leaves the field out when stripping would not change it
func plainText(s string) string {
	text := html.StripHTML(s)
	if text == s {
		return ""
	}
	return text
}
