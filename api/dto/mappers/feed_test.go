package mappers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podfeed-api/core/domain"
)

func TestToFeedResponse(t *testing.T) {
	feed := &domain.ParsedFeed{
		Title:       "Night Drive",
		Description: "<p>Synth <b>records</b></p>",
		Link:        "https://band.example.com",
		Image:       "https://band.example.com/art.jpg",
		Author:      "The Band",
		Medium:      domain.MediumMusic,
		Value: &domain.ValueBlock{
			Type:   "lightning",
			Method: "keysend",
			Recipients: []domain.ValueRecipient{
				{Name: "A", Type: "node", Address: "addr-a", Split: 60},
				{Name: "B", Type: "node", Address: "addr-b", Split: 30},
			},
		},
		Podroll:  []domain.PodRollItem{{FeedGUID: "guid-1", Title: "Friend"}},
		Funding:  &domain.FundingInfo{URL: "https://band.example.com/tip", Message: domain.DefaultFundingMessage},
		Episodes: []domain.ParsedEpisode{
			{
				Title:       "Track 1",
				Description: "Plain words",
				GUID:        "t1",
				PubDate:     "Tue, 05 Mar 2024 14:30:00 +0000",
				Duration:    "3:25",
				Enclosure:   &domain.Enclosure{URL: "https://band.example.com/1.mp3", Type: "audio/mpeg", Length: 1234},
			},
			{
				Title:    "Track 2",
				GUID:     "t2",
				PubDate:  "someday",
				Duration: "unknown",
			},
		},
	}

	resp := ToFeedResponse(feed)
	require.NotNil(t, resp)

	assert.Equal(t, "Night Drive", resp.Title)
	assert.Equal(t, "Synth records", resp.DescriptionText)
	assert.Equal(t, domain.MediumMusic, resp.Medium)
	assert.Equal(t, feed.Podroll, resp.Podroll)
	assert.Equal(t, feed.Funding, resp.Funding)

	require.NotNil(t, resp.Value)
	assert.Equal(t, 90, resp.Value.TotalSplit)
	assert.False(t, resp.Value.SplitsBalanced)
	assert.Len(t, resp.Value.Recipients, 2)

	require.Len(t, resp.Episodes, 2)
	first := resp.Episodes[0]
	assert.Equal(t, "", first.DescriptionText, "plain descriptions are not repeated")
	assert.Equal(t, "2024-03-05T14:30:00Z", first.PublishedAt)
	assert.Equal(t, "3:25", first.Duration)
	require.NotNil(t, first.DurationSeconds)
	assert.Equal(t, 205, *first.DurationSeconds)
	assert.Equal(t, int64(1234), first.Enclosure.Length)

	second := resp.Episodes[1]
	assert.Empty(t, second.PublishedAt)
	assert.Nil(t, second.DurationSeconds)
	assert.Equal(t, "unknown", second.Duration)
}

func TestToFeedResponse_Nil(t *testing.T) {
	assert.Nil(t, ToFeedResponse(nil))
	assert.Nil(t, ToValueResponse(nil))
}

func TestToFeedResponse_PlaceholderKeepsEmptyEpisodes(t *testing.T) {
	resp := ToFeedResponse(domain.UnavailableFeed())

	require.NotNil(t, resp)
	assert.True(t, resp.Placeholder)
	assert.NotNil(t, resp.Episodes)
	assert.Empty(t, resp.Episodes)
	assert.Equal(t, "Feed Unavailable", resp.Title)
}
