package internal

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// OutcomeStatus is the terminal state of one pipeline run.
type OutcomeStatus string

const (
	StatusOK                    OutcomeStatus = "ok"
	StatusInputError            OutcomeStatus = "input_error"
	StatusTranscriptUnavailable OutcomeStatus = "transcript_unavailable"
	StatusSynthesisFailed       OutcomeStatus = "synthesis_failed"
)

// Stable user-visible failure messages. Callers render these verbatim, so
// they distinguish "no transcript" from "generation failed".
const (
	MsgInvalidInput       = "Invalid data sent"
	MsgNoTranscript       = "No transcription available for this video"
	MsgSynthesisFailed    = "Failed to generate blog content from LLM api"
	MsgInvalidRequestVerb = "Invalid request method"
)

// Outcome is the single result of a pipeline run. Exactly one of Article and
// Message is populated, determined by Status.
type Outcome struct {
	Status  OutcomeStatus
	Article *Article
	Message string

	// Source records which transcript stage succeeded, for observability.
	Source SourceKind
}

// Pipeline sequences transcript acquisition and content synthesis and
// converts every failure into a uniform outcome. It is the only component
// exposed to external collaborators.
type Pipeline struct {
	acquirer    *Acquirer
	synthesizer *Synthesizer
	log         *zap.SugaredLogger
}

// NewPipeline wires the orchestrator.
func NewPipeline(acquirer *Acquirer, synthesizer *Synthesizer, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{acquirer: acquirer, synthesizer: synthesizer, log: log}
}

// Run executes RESOLVE -> ACQUIRE -> SYNTHESIZE for one video reference.
// The synthesizer is never invoked with an empty transcript, and nothing
// escapes as an unstructured fault.
func (p *Pipeline) Run(ctx context.Context, rawURL string) Outcome {
	link := strings.TrimSpace(rawURL)
	if link == "" {
		return Outcome{Status: StatusInputError, Message: MsgInvalidInput, Source: SourceNone}
	}

	videoID := CanonicalVideoID(link)
	p.log.Debugw("pipeline started", "video", videoID)

	result := p.acquirer.Acquire(ctx, videoID)
	if !result.OK {
		p.log.Infow("no transcript available", "video", videoID)
		return Outcome{Status: StatusTranscriptUnavailable, Message: MsgNoTranscript, Source: SourceNone}
	}

	article, err := p.synthesizer.Synthesize(ctx, result.Text)
	if err != nil {
		p.log.Errorw("content synthesis failed", "video", videoID, "error", err)
		return Outcome{Status: StatusSynthesisFailed, Message: MsgSynthesisFailed, Source: result.Source}
	}

	return Outcome{Status: StatusOK, Article: article, Source: result.Source}
}
