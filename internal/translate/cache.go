// Package translate provides a process-wide, bounded translation cache with
// single-flight deduplication of concurrent identical requests.
package translate

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// SourceLanguage is the assumed language of untranslated text.
const SourceLanguage = "en"

// Translator is the provider contract the cache consumes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type cacheKey struct {
	text   string
	target string
}

// Cache deduplicates and memoizes translations. Completed entries are
// immutable; capacity is bounded with LRU eviction. Translation is a
// best-effort enhancement: on provider failure the caller gets the original
// text back, never an error.
type Cache struct {
	translator Translator
	entries    *lru.Cache[cacheKey, string]
	group      singleflight.Group
}

// New creates a cache over the given translator with the given capacity.
func New(translator Translator, capacity int) (*Cache, error) {
	entries, err := lru.New[cacheKey, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{translator: translator, entries: entries}, nil
}

// Translate returns text translated to targetLang. A target equal to the
// source language short-circuits without a cache entry or provider call.
// Concurrent misses for the same (text, target) pair share one provider
// call.
func (c *Cache) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" || targetLang == "" || targetLang == SourceLanguage {
		return text, nil
	}

	key := cacheKey{text: text, target: targetLang}
	if cached, ok := c.entries.Get(key); ok {
		return cached, nil
	}

	translated, err, _ := c.group.Do(text+"\x1f"+targetLang, func() (any, error) {
		if cached, ok := c.entries.Get(key); ok {
			return cached, nil
		}
		result, err := c.translator.Translate(ctx, text, SourceLanguage, targetLang)
		if err != nil {
			return "", err
		}
		c.entries.Add(key, result)
		return result, nil
	})
	if err != nil {
		slog.Warn("translation failed, returning original text", "target", targetLang, "error", err)
		return text, nil
	}
	return translated.(string), nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
