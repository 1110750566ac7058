package internal

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// SourceKind identifies which transcript source produced a result.
type SourceKind string

const (
	SourceCaptions           SourceKind = "captions"
	SourceSubtitleScrape     SourceKind = "subtitle_scrape"
	SourceAudioTranscription SourceKind = "audio_transcription"
	SourceNone               SourceKind = "none"
)

// ErrSourceUnavailable marks a transcript source that produced nothing usable
// for this video. The acquirer advances to the next source; it is never
// surfaced to callers directly.
var ErrSourceUnavailable = errors.New("transcript source unavailable")

// TranscriptResult is the outcome of one acquisition run.
// OK is true exactly when Text is non-empty.
type TranscriptResult struct {
	Source SourceKind
	Text   string
	OK     bool
}

// TranscriptSource is one strategy in the fallback chain.
type TranscriptSource interface {
	Kind() SourceKind
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Acquirer runs an ordered chain of transcript sources and returns the first
// usable text, annotated with the source that produced it.
type Acquirer struct {
	sources []TranscriptSource
	log     *zap.SugaredLogger
}

// NewAcquirer creates an acquirer over the given sources, tried in order.
func NewAcquirer(log *zap.SugaredLogger, sources ...TranscriptSource) *Acquirer {
	return &Acquirer{sources: sources, log: log}
}

// Acquire tries each source in order. Any source error counts as
// unavailability of that source, never as a fatal fault: an unrelated
// upstream failure must not abort the whole request.
func (a *Acquirer) Acquire(ctx context.Context, videoID string) TranscriptResult {
	for _, source := range a.sources {
		text, err := source.Fetch(ctx, videoID)
		if err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				a.log.Debugw("transcript source unavailable", "source", source.Kind(), "video", videoID)
			} else {
				a.log.Warnw("transcript source failed", "source", source.Kind(), "video", videoID, "error", err)
			}
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			a.log.Debugw("transcript source returned empty text", "source", source.Kind(), "video", videoID)
			continue
		}

		a.log.Infow("transcript acquired", "source", source.Kind(), "video", videoID, "chars", len(text))
		return TranscriptResult{Source: source.Kind(), Text: text, OK: true}
	}

	return TranscriptResult{Source: SourceNone}
}
