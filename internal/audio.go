package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// AudioArtifact is a transient audio file owned by the pipeline invocation
// that created it. It must be released before the request finishes.
type AudioArtifact struct {
	Path string
	log  *zap.SugaredLogger
}

// Release removes the artifact from scratch storage. Safe to call on a nil
// artifact.
func (a *AudioArtifact) Release() {
	if a == nil || a.Path == "" {
		return
	}
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		a.log.Warnw("failed to remove audio artifact", "path", a.Path, "error", err)
	}
}

// Downloader fetches the best available audio-only stream for a video into
// scratch storage. Scratch filenames are keyed on the canonical video ID plus
// a per-request token, so concurrent requests for the same video never
// collide and no locking is needed.
type Downloader struct {
	scratchDir string
	log        *zap.SugaredLogger
}

// NewDownloader creates an audio downloader writing under scratchDir.
func NewDownloader(scratchDir string, log *zap.SugaredLogger) *Downloader {
	return &Downloader{scratchDir: scratchDir, log: log}
}

// Download fetches the audio track as mp3 and returns the artifact. Errors
// mean "no file": the caller treats them as unavailability of the audio
// stage, never as a pipeline-ending fault.
func (d *Downloader) Download(ctx context.Context, videoID string) (*AudioArtifact, error) {
	if err := EnsureDirs(d.scratchDir); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	base := fmt.Sprintf("%s-%s", CanonicalVideoID(videoID), uuid.NewString())
	outputPath := filepath.Join(d.scratchDir, base+".%(ext)s")

	dl := ytdlp.New().
		Format("bestaudio").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("10").
		NoPlaylist().
		Output(outputPath)

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		var stderr string
		if result != nil {
			stderr = result.Stderr
		}
		return nil, fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, stderr)
	}

	audioPath := filepath.Join(d.scratchDir, base+".mp3")
	if !FileExists(audioPath) {
		return nil, fmt.Errorf("downloaded audio not found at %s", audioPath)
	}

	d.log.Debugw("audio downloaded", "video", videoID, "path", audioPath)
	return &AudioArtifact{Path: audioPath, log: d.log}, nil
}

// Transcriber converts a local audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// AudioSource is the last-resort transcript stage: download the audio track,
// then run it through a speech-to-text service.
type AudioSource struct {
	downloader  *Downloader
	transcriber Transcriber
	log         *zap.SugaredLogger
}

// NewAudioSource wires the downloader to a transcriber.
func NewAudioSource(downloader *Downloader, transcriber Transcriber, log *zap.SugaredLogger) *AudioSource {
	return &AudioSource{downloader: downloader, transcriber: transcriber, log: log}
}

func (s *AudioSource) Kind() SourceKind { return SourceAudioTranscription }

// Fetch downloads audio and transcribes it. The artifact is released whether
// transcription succeeds or not.
func (s *AudioSource) Fetch(ctx context.Context, videoID string) (string, error) {
	artifact, err := s.downloader.Download(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer artifact.Release()

	text, err := s.transcriber.Transcribe(ctx, artifact.Path)
	if err != nil {
		return "", fmt.Errorf("%w: transcribing audio: %v", ErrSourceUnavailable, err)
	}

	return text, nil
}
