package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// SubtitleSource scrapes subtitle tracks out of the video's yt-dlp metadata.
// Manually-authored subtitles are preferred over auto-generated captions.
type SubtitleSource struct {
	httpClient *http.Client
	lang       string
	log        *zap.SugaredLogger
}

// NewSubtitleSource builds the subtitle-scrape source for the primary
// configured language.
func NewSubtitleSource(cfg *Config, log *zap.SugaredLogger) *SubtitleSource {
	lang := "en"
	if len(cfg.Languages) > 0 {
		lang = cfg.Languages[0]
	}
	return &SubtitleSource{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		lang:       lang,
		log:        log,
	}
}

func (s *SubtitleSource) Kind() SourceKind { return SourceSubtitleScrape }

// subtitleTrack is one downloadable subtitle variant from yt-dlp metadata.
type subtitleTrack struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// subtitleInfo is the slice of yt-dlp's JSON output this source cares about.
type subtitleInfo struct {
	Subtitles         map[string][]subtitleTrack `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleTrack `json:"automatic_captions"`
}

// Fetch inspects the video's metadata for a subtitle track, downloads the
// payload, and extracts plain text from it.
func (s *SubtitleSource) Fetch(ctx context.Context, videoID string) (string, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		return "", fmt.Errorf("%w: extracting video metadata: %v", ErrSourceUnavailable, err)
	}

	var info subtitleInfo
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return "", fmt.Errorf("%w: parsing video metadata: %v", ErrSourceUnavailable, err)
	}

	track, ok := pickTrack(&info, s.lang)
	if !ok {
		return "", fmt.Errorf("%w: no %s subtitle track", ErrSourceUnavailable, s.lang)
	}

	payload, err := s.downloadPayload(ctx, track.URL)
	if err != nil {
		return "", fmt.Errorf("%w: downloading subtitles: %v", ErrSourceUnavailable, err)
	}

	return ExtractSubtitleText(payload), nil
}

// pickTrack chooses the subtitle track for a language, manual subtitles
// first, then auto-generated captions. Within a track list, a structured
// json3 variant is preferred over timed-text markup.
func pickTrack(info *subtitleInfo, lang string) (subtitleTrack, bool) {
	for _, tracks := range []map[string][]subtitleTrack{info.Subtitles, info.AutomaticCaptions} {
		variants, ok := tracks[lang]
		if !ok || len(variants) == 0 {
			continue
		}
		for _, v := range variants {
			if v.Ext == "json3" {
				return v, true
			}
		}
		return variants[0], true
	}
	return subtitleTrack{}, false
}

func (s *SubtitleSource) downloadPayload(ctx context.Context, payloadURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, payloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching subtitle payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("subtitle payload request returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading subtitle payload: %w", err)
	}

	return string(body), nil
}

// captionEvents is the structured JSON3 caption payload: a list of timed
// events, each carrying text segments.
type captionEvents struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

var (
	markupTagRE = regexp.MustCompile(`<[^>]+>`)
	timeRangeRE = regexp.MustCompile(`\d+:\d+:\d+\.\d+ --> \d+:\d+:\d+\.\d+`)
	newlinesRE  = regexp.MustCompile(`\n+`)
)

// ExtractSubtitleText produces plain text from a subtitle payload. Structured
// JSON3 event data is tried first; when the payload is not JSON it falls back
// to stripping timed-text markup and time-range lines, collapsing newlines to
// single spaces.
func ExtractSubtitleText(payload string) string {
	var events captionEvents
	if err := json.Unmarshal([]byte(payload), &events); err == nil {
		var sb strings.Builder
		for _, event := range events.Events {
			for _, seg := range event.Segs {
				sb.WriteString(seg.UTF8)
			}
		}
		return strings.TrimSpace(sb.String())
	}

	clean := markupTagRE.ReplaceAllString(payload, "")
	clean = timeRangeRE.ReplaceAllString(clean, "")
	clean = newlinesRE.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}
