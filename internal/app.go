package internal

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// App holds the application state and dependencies.
type App struct {
	config      *Config
	log         *zap.SugaredLogger
	pipeline    *Pipeline
	acquirer    *Acquirer
	synthesizer *Synthesizer
	store       *Store
}

// AppOption customizes App creation.
type AppOption func(*App)

// WithCompleter overrides the generative provider, mainly for tests.
func WithCompleter(c Completer) AppOption {
	return func(a *App) {
		a.synthesizer = NewSynthesizer(c, a.log)
	}
}

// WithSources overrides the transcript source chain, mainly for tests.
func WithSources(sources ...TranscriptSource) AppOption {
	return func(a *App) {
		a.acquirer = NewAcquirer(a.log, sources...)
	}
}

// WithStore overrides the article store.
func WithStore(store *Store) AppOption {
	return func(a *App) {
		a.store = store
	}
}

// NewApp initializes the application from configuration. The provider client
// and all transcript sources are constructed once and reused for every
// request.
func NewApp(ctx context.Context, config *Config, log *zap.SugaredLogger, options ...AppOption) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	app := &App{config: config, log: log}

	chunker := NewChunker(&DefaultCommandRunner{}, filepath.Join(config.ScratchDir, "chunks"), log)

	// Whisper always goes through OpenAI, whichever provider generates the
	// summaries.
	var openaiClient *OpenAIClient
	if config.OpenAIAPIKey != "" {
		openaiClient = NewOpenAIClient(config, chunker, log)
	}

	var completer Completer
	switch config.Provider {
	case ProviderOpenAI:
		completer = openaiClient
	case ProviderGemini:
		gemini, err := NewGeminiClient(ctx, config, log)
		if err != nil {
			return nil, err
		}
		completer = gemini
	}
	app.synthesizer = NewSynthesizer(completer, log)

	sources, err := buildSources(config, openaiClient, log)
	if err != nil {
		return nil, err
	}
	app.acquirer = NewAcquirer(log, sources...)

	for _, option := range options {
		option(app)
	}

	app.pipeline = NewPipeline(app.acquirer, app.synthesizer, log)
	return app, nil
}

// buildSources assembles the ordered fallback chain named by the
// configuration.
func buildSources(config *Config, openaiClient *OpenAIClient, log *zap.SugaredLogger) ([]TranscriptSource, error) {
	var sources []TranscriptSource
	for _, name := range config.Sources {
		switch name {
		case SourceNameCaptions:
			sources = append(sources, NewCaptionsSource(config, log))
		case SourceNameSubtitles:
			sources = append(sources, NewSubtitleSource(config, log))
		case SourceNameAudio:
			if openaiClient == nil {
				return nil, fmt.Errorf("the %q source requires an OpenAI API key for Whisper", SourceNameAudio)
			}
			downloader := NewDownloader(config.ScratchDir, log)
			sources = append(sources, NewAudioSource(downloader, openaiClient, log))
		default:
			return nil, fmt.Errorf("unknown transcript source: %q", name)
		}
	}
	return sources, nil
}

// OpenStore opens the article database and attaches it to the app.
func (app *App) OpenStore() error {
	if app.store != nil {
		return nil
	}
	if err := EnsureDirs(filepath.Dir(app.config.DatabasePath)); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := OpenStore(app.config.DatabasePath)
	if err != nil {
		return err
	}
	app.store = store
	return nil
}

// Store returns the article store, or nil when none is open.
func (app *App) Store() *Store { return app.store }

// Pipeline returns the orchestrator.
func (app *App) Pipeline() *Pipeline { return app.pipeline }

// Generate runs the full pipeline for one video reference.
func (app *App) Generate(ctx context.Context, rawURL string) Outcome {
	return app.pipeline.Run(ctx, rawURL)
}

// AcquireTranscript runs only the transcript acquisition stage.
func (app *App) AcquireTranscript(ctx context.Context, rawURL string) TranscriptResult {
	return app.acquirer.Acquire(ctx, CanonicalVideoID(rawURL))
}

// Close releases app resources.
func (app *App) Close() error {
	if app.store != nil {
		return app.store.Close()
	}
	return nil
}
