// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/narrative-engine/internal/httputil"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// Synthesizer abstracts the speech synthesis collaborator so tests can
// supply a mock. Input is (text, voice, speed); output is raw audio bytes
// the pipeline byte-counts and persists without depending on the wire
// format (prd014-timing R4.1).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string, speed float64) ([]byte, error)
}

// deepgramSpeakURL is the speak endpoint. Tests point it at a local server.
var deepgramSpeakURL = "https://api.deepgram.com/v1/speak"

const (
	// DefaultVoice is the synthesis voice used when none is configured.
	DefaultVoice = "aura-asteria-en"

	// NeutralSpeed is the playback speed used for synthesis. Kept at 1.0
	// deliberately: the duration heuristics assume neutral pacing, and a
	// faster voice would skew every derived timing (R4.2).
	NeutralSpeed = 1.0

	defaultSynthTimeout = 60 * time.Second
)

// DeepgramSynthesizer synthesizes speech over the Deepgram speak API.
type DeepgramSynthesizer struct {
	cfg    types.TTSConfig
	client *http.Client
}

// NewDeepgramSynthesizer returns a synthesizer configured from cfg.
func NewDeepgramSynthesizer(cfg types.TTSConfig) *DeepgramSynthesizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSynthTimeout
	}
	return &DeepgramSynthesizer{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Synthesize posts text to the speak endpoint and returns the audio bytes.
// A failed call is fatal for the invocation — there is no silent fallback
// to empty audio (R4.3). Rate-limit retries run only when the caller
// budgets them via MaxRetries (R4.4).
func (d *DeepgramSynthesizer) Synthesize(ctx context.Context, text, voice string, speed float64) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("synthesize: empty text")
	}
	if voice == "" {
		voice = DefaultVoice
	}
	if speed <= 0 {
		speed = NeutralSpeed
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
	}

	q := url.Values{}
	q.Set("model", voice)
	q.Set("speed", strconv.FormatFloat(speed, 'f', 2, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deepgramSpeakURL+"?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building synthesis request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+d.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	var resp *http.Response
	if d.cfg.MaxRetries > 0 {
		resp, err = httputil.DoWithRetry(ctx, d.client, req, d.cfg.MaxRetries)
	} else {
		resp, err = d.client.Do(req)
	}
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis failed: %s: %s", resp.Status, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesized audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned no audio")
	}
	return audio, nil
}
