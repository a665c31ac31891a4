// ABOUTME: Response DTOs for feed-related API endpoints
// ABOUTME: Mirrors the parsed feed model and adds fields derived for clients

package responses

import "podfeed-api/core/domain"

// FeedResponse is the JSON body of GET /feed
type FeedResponse struct {
	Title           string                `json:"title" doc:"Channel title"`
	Description     string                `json:"description" doc:"Channel description as published"`
	DescriptionText string                `json:"descriptionText,omitempty" doc:"Description with markup removed"`
	Link            string                `json:"link" doc:"Channel website"`
	Image           string                `json:"image,omitempty" doc:"Channel artwork URL"`
	Author          string                `json:"author" doc:"Channel author"`
	Publisher       string                `json:"publisher,omitempty" doc:"Publisher name"`
	Medium          string                `json:"medium,omitempty" doc:"podcast:medium value"`
	PublisherFeed   *domain.PublisherFeed `json:"publisherFeed,omitempty" doc:"Reference to the owning publisher feed"`
	Value           *ValueResponse        `json:"value,omitempty" doc:"Channel value-for-value block"`
	Podroll         []domain.PodRollItem  `json:"podroll,omitempty" doc:"Recommended feeds, enriched from their own feeds"`
	Funding         *domain.FundingInfo   `json:"funding,omitempty" doc:"Funding link"`
	Episodes        []EpisodeResponse     `json:"episodes" doc:"Episodes in feed order"`
	PublisherAlbums []domain.PodRollItem  `json:"publisherAlbums,omitempty" doc:"Albums owned by a publisher feed"`
	Placeholder     bool                  `json:"placeholder,omitempty" doc:"Set when the feed could not be fetched and this is a stand-in"`
}

// EpisodeResponse is one episode of a FeedResponse
type EpisodeResponse struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DescriptionText string            `json:"descriptionText,omitempty" doc:"Description with markup removed"`
	Link            string            `json:"link"`
	GUID            string            `json:"guid"`
	PubDate         string            `json:"pubDate" doc:"Publish date as written in the feed"`
	PublishedAt     string            `json:"publishedAt,omitempty" doc:"Publish date in RFC 3339, when it could be parsed"`
	Duration        string            `json:"duration" doc:"Duration as written in the feed"`
	DurationSeconds *int              `json:"durationSeconds,omitempty" doc:"Duration in seconds, when it could be parsed"`
	Image           string            `json:"image,omitempty"`
	Publisher       string            `json:"publisher,omitempty"`
	Enclosure       *domain.Enclosure `json:"enclosure,omitempty"`
	Value           *ValueResponse    `json:"value,omitempty"`
}

// ValueResponse is a value block with its split summary
type ValueResponse struct {
	Type           string                  `json:"type"`
	Method         string                  `json:"method"`
	Suggested      string                  `json:"suggested,omitempty"`
	Recipients     []domain.ValueRecipient `json:"recipients"`
	TotalSplit     int                     `json:"totalSplit" doc:"Sum of recipient splits; not required to be 100"`
	SplitsBalanced bool                    `json:"splitsBalanced"`
}

// HealthResponse is the JSON body of GET /health
type HealthResponse struct {
	Status     string                 `json:"status" example:"ok"`
	Cache      string                 `json:"cache" doc:"Cache backend in use"`
	Transports []string               `json:"transports" doc:"Transport strategies in the order they are tried"`
	Features   map[string]bool        `json:"features,omitempty"`
	CacheStats map[string]interface{} `json:"cacheStats,omitempty" doc:"Backend statistics when the cache reports them"`
	Error      string                 `json:"error,omitempty"`
}
