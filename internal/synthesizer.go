package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyCompletion marks a generative call that returned no content. It is
// distinguishable from a valid short answer, which is non-empty by definition.
var ErrEmptyCompletion = errors.New("provider returned no content")

// Completer is the single capability both generative providers implement:
// a completion from a prompt.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

const summaryPrompt = `Based on the following transcript from a YouTube video, generate a summary.
Make sure the summary is well-structured, engaging, and informative:

%s
`

const titlePrompt = `Based on the following summary of a YouTube video, generate a concise
title of at most ten words. Respond with the title only:

%s
`

// Article is the synthesized output for one video.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Synthesizer turns a transcript into a summary and a derived title using
// an injected generative provider.
type Synthesizer struct {
	completer Completer
	log       *zap.SugaredLogger
}

// NewSynthesizer creates a synthesizer backed by the given provider.
func NewSynthesizer(completer Completer, log *zap.SugaredLogger) *Synthesizer {
	return &Synthesizer{completer: completer, log: log}
}

// Summarize generates a summary from a transcript. The transcript must be
// non-empty; the orchestrator enforces this before calling.
func (s *Synthesizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcript is empty")
	}

	summary, err := s.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return summary, nil
}

// Title generates a short title from a summary.
func (s *Synthesizer) Title(ctx context.Context, summary string) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", errors.New("summary is empty")
	}

	title, err := s.completer.Complete(ctx, fmt.Sprintf(titlePrompt, summary))
	if err != nil {
		return "", fmt.Errorf("generating title: %w", err)
	}
	return strings.Trim(title, `" `), nil
}

// Synthesize runs both generation steps and returns the article.
func (s *Synthesizer) Synthesize(ctx context.Context, transcript string) (*Article, error) {
	summary, err := s.Summarize(ctx, transcript)
	if err != nil {
		return nil, err
	}

	title, err := s.Title(ctx, summary)
	if err != nil {
		return nil, err
	}

	s.log.Debugw("article synthesized", "provider", s.completer.Name(), "title", title)
	return &Article{Title: title, Summary: summary}, nil
}
