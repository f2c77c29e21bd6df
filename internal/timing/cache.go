// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timing

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	metaSuffix  = ".yaml"
	audioSuffix = ".mp3"
)

// CacheKey is the content address of a script text: the first 12 hex
// characters of its SHA-256 (prd014-timing R1.2). The same text always
// yields the same key, so repeated extraction is idempotent.
func CacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h)[:12]
}

// Cache is a content-addressed store of timing metadata plus audio bytes.
// An entry is valid only when both files are present and readable — a lone
// file is a miss, never corruption (R2.2).
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir. The directory is created lazily
// on the first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Get loads the entry for key. Any read or parse failure degrades to a
// miss; cache errors never propagate (R2.3).
func (c *Cache) Get(key string) (*types.TimingExtractionResult, []byte, bool) {
	meta, err := os.ReadFile(filepath.Join(c.dir, key+metaSuffix))
	if err != nil {
		return nil, nil, false
	}
	var res types.TimingExtractionResult
	if err := yaml.Unmarshal(meta, &res); err != nil {
		return nil, nil, false
	}

	audio, err := os.ReadFile(filepath.Join(c.dir, key+audioSuffix))
	if err != nil || len(audio) == 0 {
		return nil, nil, false
	}

	return &res, audio, true
}

// Put persists metadata and audio together under key. Both files are
// written to temporary names first and published by rename, audio before
// metadata: the metadata file is the commit marker, so a reader can never
// observe a half-complete entry (R2.4).
func (c *Cache) Put(key string, res *types.TimingExtractionResult, audio []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	meta, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling timing metadata: %w", err)
	}

	audioTmp, err := writeTemp(c.dir, key+audioSuffix, audio)
	if err != nil {
		return err
	}
	metaTmp, err := writeTemp(c.dir, key+metaSuffix, meta)
	if err != nil {
		os.Remove(audioTmp)
		return err
	}

	if err := os.Rename(audioTmp, filepath.Join(c.dir, key+audioSuffix)); err != nil {
		os.Remove(audioTmp)
		os.Remove(metaTmp)
		return fmt.Errorf("publishing audio: %w", err)
	}
	if err := os.Rename(metaTmp, filepath.Join(c.dir, key+metaSuffix)); err != nil {
		os.Remove(metaTmp)
		return fmt.Errorf("publishing timing metadata: %w", err)
	}
	return nil
}

// writeTemp writes data to a uniquely named temporary file in dir, so
// concurrent writers for the same key cannot interleave.
func writeTemp(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file for %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file for %s: %w", name, err)
	}
	return f.Name(), nil
}
