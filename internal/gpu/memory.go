package gpu

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
)

// Memory management errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation cannot be
	// satisfied even after eviction.
	ErrMemoryBudgetExceeded = errors.New("wgpu: memory budget exceeded")

	// ErrMemoryManagerClosed is returned when operating on a closed manager.
	ErrMemoryManagerClosed = errors.New("wgpu: memory manager closed")
)

// DefaultMemoryBudgetMB is the default GPU memory budget for surface
// textures. A retouch session holds one full-frame texture plus scratch, so
// the budget mostly guards against oversized sources.
const DefaultMemoryBudgetMB = 256

// MemoryStats describes GPU memory usage of a backend.
type MemoryStats struct {
	// BudgetBytes is the total memory budget.
	BudgetBytes uint64

	// UsedBytes is the currently allocated memory.
	UsedBytes uint64

	// TextureCount is the number of live textures.
	TextureCount int

	// EvictionCount is the total number of textures evicted.
	EvictionCount uint64
}

// String returns a human-readable summary.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%d/%d MB, %d textures, %d evictions]",
		s.UsedBytes/(1024*1024), s.BudgetBytes/(1024*1024),
		s.TextureCount, s.EvictionCount)
}

// textureEntry tracks one texture with its LRU position.
type textureEntry struct {
	texture *Texture
	element *list.Element
}

// MemoryManager tracks texture allocations against a budget and evicts the
// least recently used texture when a new allocation would exceed it.
// Snapshot history lives in CPU memory; only the live surface and scratch
// textures go through here.
//
// MemoryManager is safe for concurrent use.
type MemoryManager struct {
	mu sync.Mutex

	budgetBytes uint64
	usedBytes   uint64

	textures map[*Texture]*textureEntry
	lru      *list.List // front = most recently used

	evictionCount uint64
	closed        bool
}

// NewMemoryManager creates a memory manager with the given budget in
// megabytes; non-positive values select DefaultMemoryBudgetMB.
func NewMemoryManager(budgetMB int) *MemoryManager {
	if budgetMB <= 0 {
		budgetMB = DefaultMemoryBudgetMB
	}
	return &MemoryManager{
		budgetBytes: uint64(budgetMB) * 1024 * 1024,
		textures:    make(map[*Texture]*textureEntry),
		lru:         list.New(),
	}
}

// Alloc creates a texture of the given size, evicting older textures if the
// budget requires it.
func (m *MemoryManager) Alloc(width, height int, label string) (*Texture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrMemoryManagerClosed
	}

	required := uint64(width) * uint64(height) * bytesPerPixel
	if required > m.budgetBytes {
		return nil, fmt.Errorf("%w: texture needs %d MB, budget is %d MB",
			ErrMemoryBudgetExceeded, required/(1024*1024), m.budgetBytes/(1024*1024))
	}

	if err := m.evictLocked(required); err != nil {
		return nil, err
	}

	tex, err := newTexture(width, height, label)
	if err != nil {
		return nil, err
	}

	entry := &textureEntry{texture: tex}
	entry.element = m.lru.PushFront(entry)
	m.textures[tex] = entry
	m.usedBytes += tex.sizeBytes
	tex.setManager(m)

	return tex, nil
}

// Touch marks a texture as recently used.
func (m *MemoryManager) Touch(tex *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.textures[tex]; ok {
		m.lru.MoveToFront(entry.element)
	}
}

// Stats returns current memory usage.
func (m *MemoryManager) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MemoryStats{
		BudgetBytes:   m.budgetBytes,
		UsedBytes:     m.usedBytes,
		TextureCount:  len(m.textures),
		EvictionCount: m.evictionCount,
	}
}

// Close releases every tracked texture. The manager is unusable afterwards.
func (m *MemoryManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	textures := make([]*Texture, 0, len(m.textures))
	for tex, entry := range m.textures {
		m.lru.Remove(entry.element)
		tex.setManager(nil) // prevent re-entrant unregister
		textures = append(textures, tex)
	}
	m.textures = nil
	m.lru = nil
	m.usedBytes = 0
	m.mu.Unlock()

	for _, tex := range textures {
		tex.Release()
	}
}

// unregister removes a texture from tracking. Called by Texture.Release.
func (m *MemoryManager) unregister(tex *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.textures[tex]
	if !ok {
		return
	}
	m.lru.Remove(entry.element)
	delete(m.textures, tex)
	m.usedBytes -= tex.sizeBytes
}

// evictLocked frees least-recently-used textures until required bytes fit.
// Caller must hold mu.
func (m *MemoryManager) evictLocked(required uint64) error {
	for m.usedBytes+required > m.budgetBytes && m.lru.Len() > 0 {
		elem := m.lru.Back()
		entry, ok := elem.Value.(*textureEntry)
		if !ok {
			m.lru.Remove(elem)
			continue
		}

		tex := entry.texture
		m.lru.Remove(elem)
		delete(m.textures, tex)
		m.usedBytes -= tex.sizeBytes
		tex.setManager(nil)
		tex.Release()
		m.evictionCount++
	}

	if m.usedBytes+required > m.budgetBytes {
		return fmt.Errorf("%w: need %d bytes, %d available",
			ErrMemoryBudgetExceeded, required, m.budgetBytes-m.usedBytes)
	}
	return nil
}
