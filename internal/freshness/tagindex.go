package freshness

import "sync"

// tagIndex tracks which cache keys were generated from which content tags so
// a tag invalidation can find every affected page. The index is rebuilt
// organically as pages regenerate, so it only ever lags by one generation.
type tagIndex struct {
	mu    sync.RWMutex
	byTag map[string]map[string]struct{}
}

func newTagIndex() *tagIndex {
	return &tagIndex{byTag: make(map[string]map[string]struct{})}
}

// add registers a cache key under every tag its generation depended on.
func (t *tagIndex) add(tags []string, key string) {
	if len(tags) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tag := range tags {
		keys, found := t.byTag[tag]
		if !found {
			keys = make(map[string]struct{})
			t.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// keys returns every cache key registered under a tag.
func (t *tagIndex) keys(tag string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.byTag[tag]))
	for key := range t.byTag[tag] {
		keys = append(keys, key)
	}
	return keys
}
