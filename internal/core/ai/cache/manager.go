package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager is an in-memory completion cache with TTL expiry and LRU
// eviction when full. Keys are derived from the prompt text.
type Manager struct {
	cfg   config.CacheConfig
	mu    sync.RWMutex
	store map[string]entry
	stats stats
}

type entry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager creates the cache. Returns nil when caching is disabled.
func NewManager(cfg config.CacheConfig) *Manager {
	if !cfg.Enabled {
		common.LogInfo("completion cache disabled")
		return nil
	}

	m := &Manager{
		cfg:   cfg,
		store: make(map[string]entry),
	}

	go m.runCleanup()

	common.LogInfo("completion cache initialized",
		zap.Int("max_size", cfg.MaxSize),
		zap.Duration("ttl", cfg.TTL),
		zap.Duration("cleanup_interval", cfg.CleanupInterval),
	)

	return m
}

// Get returns the cached completion for the prompt, or an error on a miss.
func (m *Manager) Get(ctx context.Context, prompt string) (string, error) {
	key := hashKey(prompt)

	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", common.ErrCacheMiss
	}

	if time.Now().After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", common.ErrCacheMiss
	}

	e.lastAccess = time.Now()
	e.accessCount++
	m.store[key] = e
	m.stats.hits++
	common.LogCacheHit("memory", key)

	return e.value, nil
}

// Set stores a completion. When the cache is full it first drops expired
// entries, then evicts the least recently used one.
func (m *Manager) Set(ctx context.Context, prompt, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.cfg.MaxSize {
		m.cleanupLocked()
		if len(m.store) >= m.cfg.MaxSize {
			m.evictLRULocked()
		}
		if len(m.store) >= m.cfg.MaxSize {
			common.LogWarn("completion cache full", zap.Int("size", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[hashKey(prompt)] = entry{
		value:      value,
		expiresAt:  now.Add(m.cfg.TTL),
		lastAccess: now,
	}

	return nil
}

// Size returns the current number of cached entries.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// Stats returns hit/miss/eviction counters.
func (m *Manager) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.cfg.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
	}
}

func hashKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "prompt:" + hex.EncodeToString(sum[:])
}

func (m *Manager) runCleanup() {
	interval := m.cfg.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		m.cleanupLocked()
		m.mu.Unlock()
	}
}

// cleanupLocked drops expired entries. Caller holds the lock.
func (m *Manager) cleanupLocked() {
	now := time.Now()
	removed := 0
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			m.stats.evictions++
			removed++
		}
	}
	if removed > 0 {
		common.LogDebug("expired cache entries removed",
			zap.Int("count", removed),
			zap.Int("remaining", len(m.store)),
		)
	}
}

// evictLRULocked drops the least recently used entry. Caller holds the lock.
func (m *Manager) evictLRULocked() {
	var victim string
	var victimAccess time.Time
	var victimCount int

	for key, e := range m.store {
		if victim == "" ||
			e.accessCount < victimCount ||
			(e.accessCount == victimCount && e.lastAccess.Before(victimAccess)) {
			victim = key
			victimAccess = e.lastAccess
			victimCount = e.accessCount
		}
	}

	if victim != "" {
		delete(m.store, victim)
		m.stats.evictions++
	}
}
