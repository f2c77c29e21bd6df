// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/narrative-engine/internal/httputil"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

func withSpeakServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := deepgramSpeakURL
	deepgramSpeakURL = ts.URL
	t.Cleanup(func() {
		deepgramSpeakURL = old
		ts.Close()
	})
	return ts
}

func TestDeepgramSynthesize(t *testing.T) {
	var gotAuth, gotModel, gotSpeed string
	var gotBody map[string]string

	withSpeakServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotModel = r.URL.Query().Get("model")
		gotSpeed = r.URL.Query().Get("speed")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte("mp3-bytes"))
	})

	d := NewDeepgramSynthesizer(types.TTSConfig{APIKey: "dg_test"})
	audio, err := d.Synthesize(context.Background(), "Hello there.", "aura-luna-en", 1.0)
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "Token dg_test", gotAuth)
	assert.Equal(t, "aura-luna-en", gotModel)
	assert.Equal(t, "1.00", gotSpeed)
	assert.Equal(t, "Hello there.", gotBody["text"])
}

func TestDeepgramSynthesizeDefaults(t *testing.T) {
	var gotModel, gotSpeed string
	withSpeakServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotModel = r.URL.Query().Get("model")
		gotSpeed = r.URL.Query().Get("speed")
		w.Write([]byte("x"))
	})

	d := NewDeepgramSynthesizer(types.TTSConfig{})
	_, err := d.Synthesize(context.Background(), "text", "", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultVoice, gotModel)
	assert.Equal(t, "1.00", gotSpeed)
}

func TestDeepgramSynthesizeErrors(t *testing.T) {
	t.Run("non-200 includes body snippet", func(t *testing.T) {
		withSpeakServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"err_msg":"unknown model"}`))
		})

		d := NewDeepgramSynthesizer(types.TTSConfig{})
		_, err := d.Synthesize(context.Background(), "text", "bogus", 1.0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
	})

	t.Run("empty audio is an error", func(t *testing.T) {
		withSpeakServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		d := NewDeepgramSynthesizer(types.TTSConfig{})
		_, err := d.Synthesize(context.Background(), "text", "", 1.0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no audio")
	})

	t.Run("empty text is rejected locally", func(t *testing.T) {
		d := NewDeepgramSynthesizer(types.TTSConfig{})
		_, err := d.Synthesize(context.Background(), "", "", 1.0)
		require.Error(t, err)
	})
}

func TestDeepgramSynthesizeRetryBudget(t *testing.T) {
	// Shrink the backoff so the retry path runs in milliseconds.
	oldDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = oldDelay })

	var calls int32
	withSpeakServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("x"))
	})

	t.Run("no retries without a budget", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		d := NewDeepgramSynthesizer(types.TTSConfig{})
		_, err := d.Synthesize(context.Background(), "text", "", 1.0)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("retries with a budget", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		d := NewDeepgramSynthesizer(types.TTSConfig{MaxRetries: 2})
		_, err := d.Synthesize(context.Background(), "text", "", 1.0)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}
