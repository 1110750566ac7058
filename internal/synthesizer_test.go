package internal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCompleter answers summary and title prompts with canned text.
type stubCompleter struct {
	summary string
	title   string
	err     error
	calls   int
}

func (c *stubCompleter) Name() string { return "stub" }

func (c *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if strings.Contains(prompt, "generate a summary") {
		return c.summary, nil
	}
	return c.title, nil
}

func TestSynthesize(t *testing.T) {
	completer := &stubCompleter{summary: "A thorough walkthrough.", title: "Walkthrough Explained"}
	synthesizer := NewSynthesizer(completer, zap.NewNop().Sugar())

	article, err := synthesizer.Synthesize(context.Background(), "some transcript text")
	require.NoError(t, err)

	assert.Equal(t, "Walkthrough Explained", article.Title)
	assert.Equal(t, "A thorough walkthrough.", article.Summary)
	assert.Equal(t, 2, completer.calls, "one completion per step")
}

func TestSynthesizeEmptyTranscript(t *testing.T) {
	completer := &stubCompleter{summary: "unused", title: "unused"}
	synthesizer := NewSynthesizer(completer, zap.NewNop().Sugar())

	_, err := synthesizer.Synthesize(context.Background(), "   \n ")
	assert.Error(t, err)
	assert.Equal(t, 0, completer.calls, "provider must not see an empty transcript")
}

func TestSynthesizeProviderFailure(t *testing.T) {
	completer := &stubCompleter{err: ErrEmptyCompletion}
	synthesizer := NewSynthesizer(completer, zap.NewNop().Sugar())

	_, err := synthesizer.Synthesize(context.Background(), "some transcript text")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestTitleStripsQuotes(t *testing.T) {
	completer := &stubCompleter{title: `"Quoted Title"`}
	synthesizer := NewSynthesizer(completer, zap.NewNop().Sugar())

	title, err := synthesizer.Title(context.Background(), "a summary")
	require.NoError(t, err)
	assert.Equal(t, "Quoted Title", title)
}
