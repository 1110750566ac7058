package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeSource is a scripted transcript source for acquisition tests.
type fakeSource struct {
	kind  SourceKind
	text  string
	err   error
	calls int
}

func (f *fakeSource) Kind() SourceKind { return f.kind }

func (f *fakeSource) Fetch(ctx context.Context, videoID string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestAcquireFirstSourceWins(t *testing.T) {
	first := &fakeSource{kind: SourceCaptions, text: "from captions"}
	second := &fakeSource{kind: SourceSubtitleScrape, text: "from subtitles"}
	acquirer := NewAcquirer(zap.NewNop().Sugar(), first, second)

	result := acquirer.Acquire(context.Background(), "tAP1eZYEuKA")

	assert.True(t, result.OK)
	assert.Equal(t, SourceCaptions, result.Source)
	assert.Equal(t, "from captions", result.Text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later sources must not run once one succeeds")
}

func TestAcquireAdvancesPastFailures(t *testing.T) {
	tests := []struct {
		name  string
		first *fakeSource
	}{
		{"unavailable", &fakeSource{kind: SourceCaptions, err: ErrSourceUnavailable}},
		{"unexpected error", &fakeSource{kind: SourceCaptions, err: errors.New("network down")}},
		{"empty text", &fakeSource{kind: SourceCaptions, text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := &fakeSource{kind: SourceSubtitleScrape, text: "recovered"}
			acquirer := NewAcquirer(zap.NewNop().Sugar(), tt.first, second)

			result := acquirer.Acquire(context.Background(), "tAP1eZYEuKA")

			assert.True(t, result.OK)
			assert.Equal(t, SourceSubtitleScrape, result.Source)
			assert.Equal(t, "recovered", result.Text)
			assert.Equal(t, 1, tt.first.calls)
		})
	}
}

func TestAcquireAllSourcesFail(t *testing.T) {
	first := &fakeSource{kind: SourceCaptions, err: ErrSourceUnavailable}
	second := &fakeSource{kind: SourceSubtitleScrape, err: ErrSourceUnavailable}
	third := &fakeSource{kind: SourceAudioTranscription, err: errors.New("download failed")}
	acquirer := NewAcquirer(zap.NewNop().Sugar(), first, second, third)

	result := acquirer.Acquire(context.Background(), "tAP1eZYEuKA")

	assert.False(t, result.OK)
	assert.Equal(t, SourceNone, result.Source)
	assert.Empty(t, result.Text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}

func TestAcquireNoSources(t *testing.T) {
	acquirer := NewAcquirer(zap.NewNop().Sugar())
	result := acquirer.Acquire(context.Background(), "tAP1eZYEuKA")
	assert.False(t, result.OK)
	assert.Equal(t, SourceNone, result.Source)
}
