package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalVideoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"watch url extra params", "https://www.youtube.com/watch?v=tAP1eZYEuKA&list=PLx&index=2", "tAP1eZYEuKA"},
		{"bare host", "https://youtube.com/watch?v=tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"mobile host", "https://m.youtube.com/watch?v=tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"embed path", "https://www.youtube.com/v/tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"short link", "https://youtu.be/tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"short link with timestamp", "https://youtu.be/tAP1eZYEuKA?t=42", "tAP1eZYEuKA"},
		{"bare id passes through", "tAP1eZYEuKA", "tAP1eZYEuKA"},
		{"whitespace trimmed", "  tAP1eZYEuKA  ", "tAP1eZYEuKA"},
		{"unrelated url unchanged", "https://example.com/watch?v=abc", "https://example.com/watch?v=abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalVideoID(tt.in))
		})
	}
}

func TestCanonicalVideoIDIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=tAP1eZYEuKA",
		"https://youtu.be/tAP1eZYEuKA",
		"tAP1eZYEuKA",
		"not a url at all",
	}
	for _, in := range inputs {
		once := CanonicalVideoID(in)
		assert.Equal(t, once, CanonicalVideoID(once), "resolving twice must equal resolving once for %q", in)
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=tAP1eZYEuKA", WatchURL("tAP1eZYEuKA"))
	assert.Equal(t, "https://youtu.be/tAP1eZYEuKA", WatchURL("https://youtu.be/tAP1eZYEuKA"))
}
