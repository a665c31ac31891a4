// ABOUTME: Parsing of podcast:remoteItem based references and funding links
// ABOUTME: Covers podroll recommendations, publisher albums and the owning publisher feed

package parser

import (
	"podfeed-api/core/domain"
)

// parsePodroll reads the podroll element. Items without a feedGuid or feedUrl
// are skipped; an empty podroll yields nil.
func parsePodroll(s scope) []domain.PodRollItem {
	podroll := s.fuzzy("podcast:podroll")
	if podroll == nil {
		return nil
	}

	var items []domain.PodRollItem
	for i, el := range within(podroll).all("podcast:remoteItem") {
		title := textOf(el)
		if title == "" {
			title = attrOf(el, "title")
		}
		item := domain.PodRollItem{
			FeedGUID:    attrOf(el, "feedGuid"),
			FeedURL:     attrOf(el, "feedUrl"),
			Title:       title,
			Description: attrOf(el, "description"),
			Image:       attrOf(el, "image"),
			Author:      attrOf(el, "author"),
			Position:    i,
		}
		if !item.HasReference() {
			continue
		}
		items = append(items, item)
	}
	return items
}

// parsePublisherAlbums collects every music remoteItem of a publisher feed.
// Titles and artwork are filled in later by the cross-feed resolver.
func parsePublisherAlbums(s scope) []domain.PodRollItem {
	albums := []domain.PodRollItem{}
	for _, el := range s.all("podcast:remoteItem") {
		if attrOf(el, "medium") != domain.MediumMusic {
			continue
		}
		album := domain.PodRollItem{
			FeedGUID: attrOf(el, "feedGuid"),
			FeedURL:  attrOf(el, "feedUrl"),
			Title:    textOf(el),
		}
		if album.Title == "" {
			album.Title = attrOf(el, "title")
		}
		if !album.HasReference() {
			continue
		}
		albums = append(albums, album)
	}
	return albums
}

// parsePublisherFeed finds the first remoteItem pointing at a publisher feed.
func parsePublisherFeed(s scope) *domain.PublisherFeed {
	for _, el := range s.all("podcast:remoteItem") {
		if attrOf(el, "medium") != domain.MediumPublisher {
			continue
		}
		pf := &domain.PublisherFeed{
			FeedGUID: attrOf(el, "feedGuid"),
			FeedURL:  attrOf(el, "feedUrl"),
		}
		if pf.FeedGUID != "" || pf.FeedURL != "" {
			return pf
		}
	}
	return nil
}

// parseFunding reads podcast:funding. The url attribute is required.
func parseFunding(s scope) *domain.FundingInfo {
	el := s.fuzzy("podcast:funding")
	if el == nil {
		return nil
	}
	url := attrOf(el, "url")
	if url == "" {
		return nil
	}
	message := textOf(el)
	if message == "" {
		message = attrOf(el, "message")
	}
	if message == "" {
		message = domain.DefaultFundingMessage
	}
	return &domain.FundingInfo{URL: url, Message: message}
}
