// ABOUTME: Pagination utilities for feed episodes
// ABOUTME: Used by callers that only want a window of a long episode list

package feed

import "podfeed-api/core/domain"

// PaginateEpisodes returns the page-th window of perPage episodes (1-based)
func PaginateEpisodes(episodes []domain.ParsedEpisode, page, perPage int) []domain.ParsedEpisode {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	start := (page - 1) * perPage
	if start >= len(episodes) {
		return []domain.ParsedEpisode{}
	}

	end := start + perPage
	if end > len(episodes) {
		end = len(episodes)
	}
	return episodes[start:end]
}
