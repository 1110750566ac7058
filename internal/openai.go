package internal

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

// OpenAIClient is the OpenAI-backed provider. It implements both Completer
// (chat completions for summaries and titles) and Transcriber (Whisper).
// The underlying SDK client is constructed once and reused across requests.
type OpenAIClient struct {
	client         openai.Client
	model          string
	maxTokens      int64
	whisperLimit   int64
	chunker        *Chunker
	summaryTimeout time.Duration
	whisperTimeout time.Duration
	log            *zap.SugaredLogger
}

// NewOpenAIClient creates the shared OpenAI client handle.
func NewOpenAIClient(cfg *Config, chunker *Chunker, log *zap.SugaredLogger) *OpenAIClient {
	return &OpenAIClient{
		client:         openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:          cfg.OpenAIModel,
		maxTokens:      cfg.MaxTokens,
		whisperLimit:   WhisperLimit,
		chunker:        chunker,
		summaryTimeout: cfg.SummaryTimeout,
		whisperTimeout: cfg.WhisperTimeout,
		log:            log,
	}
}

func (c *OpenAIClient) Name() string { return ProviderOpenAI }

// Complete sends a single user prompt through the chat completions API.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.summaryTimeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(c.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// Transcribe transcribes an audio file using the Whisper API, splitting files
// above the upload limit into chunks first.
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.whisperTimeout)
	defer cancel()

	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("getting audio file info: %w", err)
	}

	numChunks := int(math.Ceil(float64(info.Size()) / float64(c.whisperLimit)))

	chunks := []string{audioPath}
	if numChunks > 1 {
		chunks, err = c.chunker.Split(ctx, audioPath, numChunks)
		if err != nil {
			return "", fmt.Errorf("splitting audio: %w", err)
		}
		defer cleanupFiles(chunks...)
	}

	return c.transcribeChunks(ctx, chunks)
}

// transcribeChunks runs chunks through Whisper sequentially and joins the
// results.
func (c *OpenAIClient) transcribeChunks(ctx context.Context, chunks []string) (string, error) {
	var sb strings.Builder
	for i, chunkPath := range chunks {
		file, err := os.Open(chunkPath)
		if err != nil {
			return "", fmt.Errorf("opening chunk %s: %w", chunkPath, err)
		}

		resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
			File:  file,
			Model: openai.AudioModelWhisper1,
		})
		if closeErr := file.Close(); closeErr != nil {
			c.log.Warnw("failed to close chunk file", "path", chunkPath, "error", closeErr)
		}
		if err != nil {
			return "", fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		sb.WriteString(resp.Text)
		if i < len(chunks)-1 {
			sb.WriteString("\n")
		}

		c.log.Debugw("chunk transcribed", "chunk", i+1, "total", len(chunks))
	}

	return sb.String(), nil
}
