package domain

// Placeholder feeds stand in for a real feed when a fetch fails softly.
// They are never cached.

// UnavailableFeed is returned when every transport failed
func UnavailableFeed() *ParsedFeed {
	return placeholder("Feed Unavailable", "Unable to fetch feed due to CORS or network issues")
}

// InvalidFeed is returned when the fetched payload was not XML
func InvalidFeed(decodeFailed bool) *ParsedFeed {
	if decodeFailed {
		return placeholder("Invalid Feed", "Unable to decode feed content")
	}
	return placeholder("Invalid Feed", "Feed returned non-XML content")
}

// ErrorFeed is returned for unexpected failures while fetching
func ErrorFeed() *ParsedFeed {
	return placeholder("Feed Error", "Error occurred while fetching or parsing feed")
}

func placeholder(title, description string) *ParsedFeed {
	return &ParsedFeed{
		Title:       title,
		Description: description,
		Episodes:    []ParsedEpisode{},
		Placeholder: true,
	}
}
