package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"205", 205, true},
		{" 205.7 ", 205, true},
		{"3:25", 205, true},
		{"01:02:03", 3723, true},
		{"62:03", 3723, true},
		{"1h2m3s", 3723, true},
		{"", 0, false},
		{"soon", 0, false},
		{"1:2:3:4", 0, false},
		{"-5", 0, false},
		{"a:10", 0, false},
	}
	for _, tt := range tests {
		got, ok := Seconds(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0:00", Clock(0))
	assert.Equal(t, "3:25", Clock(205))
	assert.Equal(t, "1:02:03", Clock(3723))
	assert.Equal(t, "0:00", Clock(-1))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "3:25", Normalize("205"))
	assert.Equal(t, "unknown", Normalize("unknown"))
}
