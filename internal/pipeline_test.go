package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPipeline(source TranscriptSource, completer Completer) *Pipeline {
	log := zap.NewNop().Sugar()
	sources := []TranscriptSource{}
	if source != nil {
		sources = append(sources, source)
	}
	return NewPipeline(NewAcquirer(log, sources...), NewSynthesizer(completer, log), log)
}

func TestPipelineRunOK(t *testing.T) {
	source := &fakeSource{kind: SourceCaptions, text: "the spoken words"}
	completer := &stubCompleter{summary: "What was said, condensed.", title: "The Spoken Words"}
	pipeline := newTestPipeline(source, completer)

	outcome := pipeline.Run(context.Background(), "https://youtu.be/tAP1eZYEuKA")

	assert.Equal(t, StatusOK, outcome.Status)
	require.NotNil(t, outcome.Article)
	assert.Equal(t, "The Spoken Words", outcome.Article.Title)
	assert.Equal(t, "What was said, condensed.", outcome.Article.Summary)
	assert.Equal(t, SourceCaptions, outcome.Source)
	assert.Empty(t, outcome.Message)
}

func TestPipelineRunBlankInput(t *testing.T) {
	source := &fakeSource{kind: SourceCaptions, text: "unused"}
	completer := &stubCompleter{summary: "unused", title: "unused"}
	pipeline := newTestPipeline(source, completer)

	for _, input := range []string{"", "   ", "\n\t"} {
		outcome := pipeline.Run(context.Background(), input)
		assert.Equal(t, StatusInputError, outcome.Status)
		assert.Equal(t, MsgInvalidInput, outcome.Message)
		assert.Nil(t, outcome.Article)
	}
	assert.Equal(t, 0, source.calls, "no acquisition for rejected input")
	assert.Equal(t, 0, completer.calls)
}

func TestPipelineRunNoTranscript(t *testing.T) {
	source := &fakeSource{kind: SourceCaptions, err: ErrSourceUnavailable}
	completer := &stubCompleter{summary: "unused", title: "unused"}
	pipeline := newTestPipeline(source, completer)

	outcome := pipeline.Run(context.Background(), "tAP1eZYEuKA")

	assert.Equal(t, StatusTranscriptUnavailable, outcome.Status)
	assert.Equal(t, MsgNoTranscript, outcome.Message)
	assert.Equal(t, SourceNone, outcome.Source)
	assert.Nil(t, outcome.Article)
	assert.Equal(t, 0, completer.calls, "synthesis must not run without a transcript")
}

func TestPipelineRunSynthesisFailure(t *testing.T) {
	source := &fakeSource{kind: SourceSubtitleScrape, text: "the spoken words"}
	completer := &stubCompleter{err: ErrEmptyCompletion}
	pipeline := newTestPipeline(source, completer)

	outcome := pipeline.Run(context.Background(), "tAP1eZYEuKA")

	assert.Equal(t, StatusSynthesisFailed, outcome.Status)
	assert.Equal(t, MsgSynthesisFailed, outcome.Message)
	assert.Equal(t, SourceSubtitleScrape, outcome.Source)
	assert.Nil(t, outcome.Article)
}
