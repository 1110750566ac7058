package internal

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner.
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Chunker splits audio files into Whisper-sized pieces using FFmpeg.
type Chunker struct {
	runner     CommandRunner
	scratchDir string
	log        *zap.SugaredLogger
}

// NewChunker creates an audio chunker writing pieces under scratchDir.
func NewChunker(runner CommandRunner, scratchDir string, log *zap.SugaredLogger) *Chunker {
	return &Chunker{runner: runner, scratchDir: scratchDir, log: log}
}

// Duration returns the audio file duration in seconds.
func (c *Chunker) Duration(ctx context.Context, audioFile string) (float64, error) {
	output, err := c.runner.Run(ctx, "ffprobe",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")

	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}

	return duration, nil
}

// Split divides an audio file into numChunks smaller files.
func (c *Chunker) Split(ctx context.Context, audioFile string, numChunks int) ([]string, error) {
	if err := EnsureDirs(c.scratchDir); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	duration, err := c.Duration(ctx, audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio duration: %w", err)
	}

	chunkDuration := int(math.Ceil(duration / float64(numChunks)))
	chunks := make([]string, 0, numChunks)

	for i := range numChunks {
		start := i * chunkDuration
		output := filepath.Join(c.scratchDir, fmt.Sprintf("%s_chunk_%d.mp3", filepath.Base(audioFile), i))

		if err := c.chunk(ctx, audioFile, start, chunkDuration, output); err != nil {
			cleanupFiles(chunks...)
			return nil, fmt.Errorf("creating chunk %d: %w", i, err)
		}
		chunks = append(chunks, output)
	}

	c.log.Debugw("audio split", "file", audioFile, "chunks", numChunks)
	return chunks, nil
}

// chunk extracts a segment from an audio file.
func (c *Chunker) chunk(ctx context.Context, audioFile string, start, duration int, output string) error {
	cmdOutput, err := c.runner.Run(ctx, "ffmpeg",
		"-v", "quiet",
		"-i", audioFile,
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(duration),
		"-c:a", "copy",
		"-y", output)

	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(cmdOutput))
	}
	return nil
}
