// ABOUTME: Feed domain model for a parsed podcast-namespace RSS channel
// ABOUTME: Holds channel metadata, value-for-value data, podroll and episodes

package domain

// MediumPublisher is the podcast:medium value that turns a feed into a publisher feed
const MediumPublisher = "publisher"

// MediumMusic marks remoteItems that reference album feeds
const MediumMusic = "music"

// ParsedFeed is the structured result of parsing one RSS document
type ParsedFeed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image,omitempty"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher,omitempty"`

	// Medium is the raw podcast:medium value (e.g. "music", "publisher")
	Medium string `json:"medium,omitempty"`

	PublisherFeed *PublisherFeed `json:"publisherFeed,omitempty"`
	Value         *ValueBlock    `json:"value,omitempty"`
	Podroll       []PodRollItem  `json:"podroll,omitempty"`
	Funding       *FundingInfo   `json:"funding,omitempty"`

	// Episodes is never nil; a feed without items has an empty slice
	Episodes []ParsedEpisode `json:"episodes"`

	// PublisherAlbums is only populated for publisher feeds
	PublisherAlbums []PodRollItem `json:"publisherAlbums,omitempty"`

	// Placeholder is set on the stand-in feeds returned for soft failures
	Placeholder bool `json:"placeholder,omitempty"`
}

// IsPublisher reports whether the feed declared itself a publisher feed
func (f *ParsedFeed) IsPublisher() bool {
	return f.Medium == MediumPublisher
}

// HasCrossFeedReferences reports whether resolving remote feeds could enrich this feed
func (f *ParsedFeed) HasCrossFeedReferences() bool {
	return len(f.Podroll) > 0 || len(f.PublisherAlbums) > 0
}

// PublisherFeed points at the publisher feed that owns this feed
type PublisherFeed struct {
	FeedGUID string `json:"feedGuid,omitempty"`
	FeedURL  string `json:"feedUrl,omitempty"`
}

// PodRollItem is a recommended or owned feed referenced through remoteItem
type PodRollItem struct {
	FeedGUID    string `json:"feedGuid,omitempty"`
	FeedURL     string `json:"feedUrl,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Author      string `json:"author,omitempty"`
	// Position is the ordinal of the remoteItem within its podroll,
	// counting items that were skipped for lacking a reference
	Position int `json:"-"`
}

// HasReference reports whether the item points at a resolvable feed
func (p PodRollItem) HasReference() bool {
	return p.FeedGUID != "" || p.FeedURL != ""
}

// DefaultFundingMessage is used when a funding element carries no message
const DefaultFundingMessage = "Support this podcast"

// FundingInfo is the podcast:funding link
type FundingInfo struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
