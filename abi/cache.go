package abi

import (
	"crypto/sha256"
	"sync"
)

// Cache memoizes classification results keyed by signature fingerprint.
// Signatures are immutable, so entries are never invalidated. Safe for
// concurrent use; callers must treat returned values as shared and
// read-only.
type Cache struct {
	mu         sync.RWMutex
	classifier *Classifier
	entries    map[[sha256.Size]byte]cacheEntry
}

type cacheEntry struct {
	wrapper *WrapperSignature
	plan    *MarshallingPlan
}

func NewCache(classifier *Classifier) *Cache {
	return &Cache{
		classifier: classifier,
		entries:    make(map[[sha256.Size]byte]cacheEntry),
	}
}

// Classify returns the memoized result for sig, classifying on first use.
func (c *Cache) Classify(sig Signature) (*WrapperSignature, *MarshallingPlan, error) {
	key, err := Fingerprint(sig)
	if err != nil {
		return nil, nil, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry.wrapper, entry.plan, nil
	}

	wrapper, plan, err := c.classifier.Classify(sig)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing.wrapper, existing.plan, nil
	}
	c.entries[key] = cacheEntry{wrapper: wrapper, plan: plan}
	return wrapper, plan, nil
}

// Len reports how many signatures are memoized.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Classify classifies sig for the SysV AMD64 target through a shared
// memoizing classifier.
func Classify(sig Signature) (*WrapperSignature, *MarshallingPlan, error) {
	defaultOnce.Do(func() {
		defaultCache = NewCache(newClassifier(AMD64SysV()))
	})
	return defaultCache.Classify(sig)
}
