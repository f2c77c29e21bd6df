// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timing

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("the same text")
	if !regexp.MustCompile(`^[0-9a-f]{12}$`).MatchString(key) {
		t.Errorf("key %q is not 12 hex characters", key)
	}
	if again := CacheKey("the same text"); again != key {
		t.Errorf("same text produced different keys: %q vs %q", again, key)
	}
	if other := CacheKey("different text"); other == key {
		t.Error("different text produced the same key")
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache(t.TempDir())
	key := CacheKey("some script text")
	res := &types.TimingExtractionResult{
		CacheKey:        key,
		TotalDurationMs: 5000,
		SceneTimings: []types.SceneTiming{
			{SceneID: "scene-01", StartMs: 0, EndMs: 5000, TotalDurationMs: 5000},
		},
	}
	audio := []byte("audio-bytes")

	if err := c.Put(key, res, audio); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, gotAudio, ok := c.Get(key)
	if !ok {
		t.Fatal("Get missed a freshly stored entry")
	}
	if got.TotalDurationMs != res.TotalDurationMs {
		t.Errorf("total = %d, want %d", got.TotalDurationMs, res.TotalDurationMs)
	}
	if len(got.SceneTimings) != 1 || got.SceneTimings[0].SceneID != "scene-01" {
		t.Errorf("scene timings = %+v", got.SceneTimings)
	}
	if !bytes.Equal(gotAudio, audio) {
		t.Error("audio bytes not preserved")
	}
}

func TestCacheGetMisses(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir)
	key := CacheKey("text")

	if _, _, ok := c.Get(key); ok {
		t.Error("empty cache reported a hit")
	}

	// A lone audio file is a miss, never corruption.
	if err := os.WriteFile(filepath.Join(dir, key+audioSuffix), []byte("orphan"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := c.Get(key); ok {
		t.Error("lone audio file reported a hit")
	}

	// A lone metadata file is also a miss.
	os.Remove(filepath.Join(dir, key+audioSuffix))
	if err := os.WriteFile(filepath.Join(dir, key+metaSuffix), []byte("cache_key: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := c.Get(key); ok {
		t.Error("lone metadata file reported a hit")
	}
}

func TestCachePutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir)
	key := CacheKey("text")

	if err := c.Put(key, &types.TimingExtractionResult{CacheKey: key}, []byte("a")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("cache dir has %d files, want 2: %v", len(entries), names)
	}
}

func TestCachePutIdempotent(t *testing.T) {
	c := NewCache(t.TempDir())
	key := CacheKey("text")
	res := &types.TimingExtractionResult{CacheKey: key, TotalDurationMs: 100}

	for i := 0; i < 3; i++ {
		if err := c.Put(key, res, []byte("same-audio")); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}
	got, audio, ok := c.Get(key)
	if !ok || got.TotalDurationMs != 100 || string(audio) != "same-audio" {
		t.Errorf("re-stored entry not readable: ok=%v res=%+v audio=%q", ok, got, audio)
	}
}
