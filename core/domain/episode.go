package domain

// ParsedEpisode is one RSS item
type ParsedEpisode struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	GUID        string `json:"guid"`
	PubDate     string `json:"pubDate"`

	// Duration is kept exactly as published ("3:25", "205", "00:03:25")
	Duration string `json:"duration"`

	Image     string      `json:"image,omitempty"`
	Publisher string      `json:"publisher,omitempty"`
	Enclosure *Enclosure  `json:"enclosure,omitempty"`
	Value     *ValueBlock `json:"value,omitempty"`
}

// Enclosure is the media attachment of an episode
type Enclosure struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Length int64  `json:"length,omitempty"`
}
