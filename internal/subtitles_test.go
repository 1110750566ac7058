package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSubtitleTextJSON3(t *testing.T) {
	payload := `{"events":[
		{"segs":[{"utf8":"Hello "},{"utf8":"world."}]},
		{"segs":[{"utf8":" Welcome back."}]}
	]}`

	assert.Equal(t, "Hello world. Welcome back.", ExtractSubtitleText(payload))
}

func TestExtractSubtitleTextJSON3Empty(t *testing.T) {
	assert.Equal(t, "", ExtractSubtitleText(`{"events":[]}`))
}

func TestExtractSubtitleTextMarkupFallback(t *testing.T) {
	payload := "WEBVTT\n\n00:00:01.000 --> 00:00:04.000\n<c>Hello</c> world\n00:00:04.000 --> 00:00:07.000\nsecond line\n"

	got := ExtractSubtitleText(payload)
	assert.NotContains(t, got, "<c>")
	assert.NotContains(t, got, "-->")
	assert.NotContains(t, got, "\n")
	assert.Contains(t, got, "Hello world")
	assert.Contains(t, got, "second line")
}

func TestPickTrack(t *testing.T) {
	manual := subtitleTrack{URL: "https://example.com/manual.vtt", Ext: "vtt"}
	manualJSON := subtitleTrack{URL: "https://example.com/manual.json3", Ext: "json3"}
	auto := subtitleTrack{URL: "https://example.com/auto.json3", Ext: "json3"}

	tests := []struct {
		name string
		info subtitleInfo
		want subtitleTrack
		ok   bool
	}{
		{
			name: "manual wins over auto",
			info: subtitleInfo{
				Subtitles:         map[string][]subtitleTrack{"en": {manual}},
				AutomaticCaptions: map[string][]subtitleTrack{"en": {auto}},
			},
			want: manual,
			ok:   true,
		},
		{
			name: "json3 variant preferred within a track",
			info: subtitleInfo{
				Subtitles: map[string][]subtitleTrack{"en": {manual, manualJSON}},
			},
			want: manualJSON,
			ok:   true,
		},
		{
			name: "falls back to auto captions",
			info: subtitleInfo{
				AutomaticCaptions: map[string][]subtitleTrack{"en": {auto}},
			},
			want: auto,
			ok:   true,
		},
		{
			name: "missing language",
			info: subtitleInfo{
				Subtitles: map[string][]subtitleTrack{"de": {manual}},
			},
			ok: false,
		},
		{name: "no tracks at all", info: subtitleInfo{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickTrack(&tt.info, "en")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
