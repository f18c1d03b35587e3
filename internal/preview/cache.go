package preview

import (
	"container/list"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
)

const defaultCacheEntries = 16

// Renderer decodes and renders payloads, remembering recent results so a
// re-layout does not decode the same PNG again.
type Renderer struct {
	mu      sync.Mutex
	limit   int
	order   *list.List
	entries map[string]*list.Element
	hits    int
	misses  int
}

type cacheEntry struct {
	key    string
	output string
}

// NewRenderer returns a renderer caching up to limit previews. Non-positive
// limits use a small default.
func NewRenderer(limit int) *Renderer {
	if limit <= 0 {
		limit = defaultCacheEntries
	}
	return &Renderer{
		limit:   limit,
		order:   list.New(),
		entries: map[string]*list.Element{},
	}
}

// Render returns the half-block preview of payload fitted to the cell box.
func (r *Renderer) Render(payload string, widthCells, heightCells int) (string, error) {
	key := cacheKey(payload, widthCells, heightCells)

	r.mu.Lock()
	if el, ok := r.entries[key]; ok {
		r.order.MoveToFront(el)
		r.hits++
		out := el.Value.(*cacheEntry).output
		r.mu.Unlock()
		return out, nil
	}
	r.misses++
	r.mu.Unlock()

	img, err := Decode(payload)
	if err != nil {
		return "", err
	}
	out := Halfblocks(Fit(img, widthCells, heightCells))

	r.mu.Lock()
	defer r.mu.Unlock()
	if el, ok := r.entries[key]; ok {
		r.order.MoveToFront(el)
		return out, nil
	}
	r.entries[key] = r.order.PushFront(&cacheEntry{key: key, output: out})
	for r.order.Len() > r.limit {
		oldest := r.order.Back()
		r.order.Remove(oldest)
		delete(r.entries, oldest.Value.(*cacheEntry).key)
	}
	return out, nil
}

// Stats reports cache hits and misses.
func (r *Renderer) Stats() (hits, misses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits, r.misses
}

// Len returns the number of cached previews.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

func cacheKey(payload string, w, h int) string {
	sum := sha1.Sum([]byte(payload))
	return fmt.Sprintf("%s-%dx%d", hex.EncodeToString(sum[:]), w, h)
}
