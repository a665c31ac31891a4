package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueRecipient_Valid(t *testing.T) {
	tests := []struct {
		name string
		r    ValueRecipient
		want bool
	}{
		{"complete", ValueRecipient{Type: "node", Address: "02abc", Split: 50}, true},
		{"missing type", ValueRecipient{Address: "02abc", Split: 50}, false},
		{"missing address", ValueRecipient{Type: "node", Split: 50}, false},
		{"zero split", ValueRecipient{Type: "node", Address: "02abc"}, false},
		{"negative split", ValueRecipient{Type: "node", Address: "02abc", Split: -5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Valid())
		})
	}
}

func TestValueBlock_Splits(t *testing.T) {
	v := &ValueBlock{Recipients: []ValueRecipient{
		{Name: "A", Type: "node", Address: "a", Split: 60},
		{Name: "B", Type: "node", Address: "b", Split: 40},
	}}
	assert.Equal(t, 100, v.TotalSplit())
	assert.True(t, v.SplitsBalanced())

	v.Recipients = append(v.Recipients, ValueRecipient{Type: "node", Address: "c", Split: 5})
	assert.Equal(t, 105, v.TotalSplit())
	assert.False(t, v.SplitsBalanced())

	var nilBlock *ValueBlock
	assert.Equal(t, 0, nilBlock.TotalSplit())
}

func TestValueBlock_PaymentRecipients(t *testing.T) {
	v := &ValueBlock{Recipients: []ValueRecipient{
		{Name: "Host", Type: "node", Address: "a", Split: 90, CustomKey: "7629169"},
		{Type: "node", Address: "b", Split: 10, Fee: true},
	}}

	got := v.PaymentRecipients()

	assert.Equal(t, []PaymentRecipient{
		{Name: "Host", Address: "a", Type: "node", Split: 90},
		{Name: UnknownArtist, Address: "b", Type: "node", Split: 10},
	}, got)

	var nilBlock *ValueBlock
	assert.Nil(t, nilBlock.PaymentRecipients())
}

func TestPlaceholders(t *testing.T) {
	unavailable := UnavailableFeed()
	assert.Equal(t, "Feed Unavailable", unavailable.Title)
	assert.Equal(t, "Unable to fetch feed due to CORS or network issues", unavailable.Description)
	assert.NotNil(t, unavailable.Episodes)
	assert.Empty(t, unavailable.Episodes)
	assert.True(t, unavailable.Placeholder)

	assert.Equal(t, "Feed returned non-XML content", InvalidFeed(false).Description)
	assert.Equal(t, "Unable to decode feed content", InvalidFeed(true).Description)
	assert.Equal(t, "Feed Error", ErrorFeed().Title)
}

func TestParsedFeed_Helpers(t *testing.T) {
	f := &ParsedFeed{Medium: MediumPublisher}
	assert.True(t, f.IsPublisher())
	assert.False(t, f.HasCrossFeedReferences())

	f.PublisherAlbums = []PodRollItem{{FeedURL: "https://x/album.xml"}}
	assert.True(t, f.HasCrossFeedReferences())

	assert.True(t, PodRollItem{FeedGUID: "g"}.HasReference())
	assert.False(t, PodRollItem{Title: "t"}.HasReference())
}
