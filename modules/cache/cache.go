// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a fixed size in-memory cache in front of a loader
type LRU[K comparable, V any] struct {
	name  string
	cache *lru.Cache[K, V]
}

// NewLRU creates a named LRU holding at most size entries
func NewLRU[K comparable, V any](name string, size int) (*LRU[K, V], error) {
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, fmt.Errorf("create %s cache: %w", name, err)
	}
	return &LRU[K, V]{name: name, cache: c}, nil
}

// Get returns the cached value of key, or calls getFunc and caches its result.
// Errors are never cached.
func (c *LRU[K, V]) Get(key K, getFunc func() (V, error)) (V, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := getFunc()
	if err != nil {
		return v, err
	}
	c.cache.Add(key, v)
	return v, nil
}

// Remove evicts key
func (c *LRU[K, V]) Remove(key K) {
	c.cache.Remove(key)
}

// Purge evicts everything
func (c *LRU[K, V]) Purge() {
	c.cache.Purge()
}

// Len is the number of cached entries
func (c *LRU[K, V]) Len() int {
	return c.cache.Len()
}
