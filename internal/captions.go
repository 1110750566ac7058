package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// CaptionsSource fetches transcripts from YouTube's captions API, trying each
// preferred language in order.
type CaptionsSource struct {
	client *youtube.Client
	langs  []string
	log    *zap.SugaredLogger
}

// NewCaptionsSource builds the captions source. When proxy credentials are
// configured, all captions traffic is routed through the proxy.
func NewCaptionsSource(cfg *Config, log *zap.SugaredLogger) *CaptionsSource {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	if cfg.ProxyURL != "" {
		if proxyURL, err := url.Parse(cfg.ProxyURL); err != nil {
			log.Warnw("ignoring invalid proxy URL", "error", err)
		} else {
			if cfg.ProxyUsername != "" {
				proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
			}
			httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &CaptionsSource{
		client: &youtube.Client{HTTPClient: httpClient},
		langs:  cfg.Languages,
		log:    log,
	}
}

func (s *CaptionsSource) Kind() SourceKind { return SourceCaptions }

// Fetch returns the caption track text for the first preferred language that
// has one. "No transcript" and upstream faults are both reported as source
// unavailability so the acquirer advances to the next stage.
func (s *CaptionsSource) Fetch(ctx context.Context, videoID string) (string, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: fetching video info: %v", ErrSourceUnavailable, err)
	}

	var lastErr error
	for _, lang := range s.langs {
		transcript, err := s.client.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			if errors.Is(err, youtube.ErrTranscriptDisabled) {
				return "", fmt.Errorf("%w: transcript disabled", ErrSourceUnavailable)
			}
			s.log.Debugw("captions lookup failed", "video", videoID, "lang", lang, "error", err)
			lastErr = err
			continue
		}
		if len(transcript) == 0 {
			continue
		}

		var sb strings.Builder
		for i, segment := range transcript {
			if segment.Text == "" {
				continue
			}
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(segment.Text)
		}
		return strings.TrimSpace(sb.String()), nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, lastErr)
	}
	return "", fmt.Errorf("%w: no caption track for languages %s", ErrSourceUnavailable, strings.Join(s.langs, ", "))
}
