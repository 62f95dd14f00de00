package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"lancast/internal/logging"
)

const (
	// DefaultMaxSizeMB is the default byte budget for cached content.
	DefaultMaxSizeMB = 500

	// DefaultMemoryItems is the number of entries kept in memory. Entries
	// pushed out of memory remain readable from disk.
	DefaultMemoryItems = 100
)

// ContentType labels what kind of content a cached payload holds.
type ContentType string

const (
	ContentMarkdown ContentType = "markdown"
	ContentVideo    ContentType = "video"
	ContentAudio    ContentType = "audio"
	ContentImage    ContentType = "image"
	ContentPDF      ContentType = "pdf"
	ContentStream   ContentType = "stream"
)

// Content is one cached payload with its metadata.
type Content struct {
	ID       string
	Type     ContentType
	Source   string
	Data     []byte
	MIMEType string
	Size     int
	CachedAt time.Time
}

// clone returns a deep copy so readers never share the payload bytes held
// by the memory tier.
func (c *Content) clone() *Content {
	out := *c
	out.Data = append([]byte(nil), c.Data...)
	return &out
}

// Stats reports cache occupancy.
type Stats struct {
	MemoryItems    int
	DiskItems      int
	TotalSizeBytes int64
	MaxSizeBytes   int64
}

// entry is the disk index record; it keeps enough metadata to reconstruct
// a Content from its file after the payload left the memory tier.
type entry struct {
	path        string
	contentType ContentType
	source      string
	mimeType    string
	size        int64
	cachedAt    time.Time
}

// Cache stores content bytes with LRU eviction and disk-backed persistence.
// The memory tier holds a bounded number of payloads for fast reads; every
// payload is also written to the cache directory, and the total byte budget
// is enforced by evicting least-recently-used entries (memory and file).
type Cache struct {
	mu      sync.Mutex
	memory  *lru.Cache[string, *Content]
	disk    map[string]entry
	dir     string
	maxSize int64
	size    int64
}

// New creates a cache in the user cache directory with default limits.
func New() (*Cache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return NewWithConfig(filepath.Join(base, "lancast"), DefaultMaxSizeMB, DefaultMemoryItems)
}

// NewWithConfig creates a cache with an explicit directory, byte budget
// (in MB) and memory-tier capacity.
func NewWithConfig(dir string, maxSizeMB, memoryItems int) (*Cache, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if memoryItems <= 0 {
		memoryItems = DefaultMemoryItems
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	memory, err := lru.New[string, *Content](memoryItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	return &Cache{
		memory:  memory,
		disk:    make(map[string]entry),
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}, nil
}

// Store caches a payload and returns its generated id. When the byte budget
// would be exceeded, least-recently-used entries are evicted first.
func (c *Cache) Store(contentType ContentType, source string, data []byte, mimeType string) (string, error) {
	id := uuid.NewString()
	size := int64(len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureCapacity(size)

	content := &Content{
		ID:       id,
		Type:     contentType,
		Source:   source,
		Data:     data,
		MIMEType: mimeType,
		Size:     len(data),
		CachedAt: time.Now(),
	}

	path := filepath.Join(c.dir, id)
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to persist cached content: %w", err)
	}

	c.memory.Add(id, content)
	c.disk[id] = entry{
		path:        path,
		contentType: contentType,
		source:      source,
		mimeType:    mimeType,
		size:        size,
		cachedAt:    content.CachedAt,
	}
	c.size += size

	logging.Debug("Cached content",
		zap.String("cache_id", id),
		zap.String("content_type", string(contentType)),
		zap.Int64("size", size),
	)
	return id, nil
}

// Get returns cached content by id. Memory hits are served from the memory
// tier; disk hits are reloaded from the cache file and promoted back into
// memory. Returned values are copies, so callers cannot mutate cached bytes.
func (c *Cache) Get(id string) (*Content, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if content, ok := c.memory.Get(id); ok {
		return content.clone(), true
	}

	meta, ok := c.disk[id]
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(meta.path)
	if err != nil {
		// The file vanished underneath us; drop the dangling index entry.
		logging.Warn("Cached file unreadable, dropping entry",
			zap.String("cache_id", id),
			zap.Error(err),
		)
		delete(c.disk, id)
		c.size -= meta.size
		return nil, false
	}

	content := &Content{
		ID:       id,
		Type:     meta.contentType,
		Source:   meta.source,
		Data:     data,
		MIMEType: meta.mimeType,
		Size:     int(meta.size),
		CachedAt: meta.cachedAt,
	}
	c.memory.Add(id, content)
	return content.clone(), true
}

// Remove deletes one entry from memory and disk. Removing an absent id is
// a no-op.
func (c *Cache) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(id)
}

func (c *Cache) removeLocked(id string) error {
	c.memory.Remove(id)

	meta, ok := c.disk[id]
	if !ok {
		return nil
	}
	delete(c.disk, id)
	c.size -= meta.size

	if err := os.Remove(meta.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cached file: %w", err)
	}
	return nil
}

// Clear removes every cached entry and its backing file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory.Purge()

	var firstErr error
	for id, meta := range c.disk {
		if err := os.Remove(meta.path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("failed to remove cached file: %w", err)
		}
		delete(c.disk, id)
	}
	c.size = 0
	return firstErr
}

// Stats reports current occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		MemoryItems:    c.memory.Len(),
		DiskItems:      len(c.disk),
		TotalSizeBytes: c.size,
		MaxSizeBytes:   c.maxSize,
	}
}

// ensureCapacity evicts least-recently-used entries until needed bytes fit
// within the budget. Caller holds the lock.
func (c *Cache) ensureCapacity(needed int64) {
	for c.size+needed > c.maxSize {
		id, _, ok := c.memory.RemoveOldest()
		if !ok {
			// Nothing left in the memory tier to order evictions by;
			// fall back to dropping arbitrary disk entries.
			var any string
			for did := range c.disk {
				any = did
				break
			}
			if any == "" {
				return
			}
			id = any
		}

		meta, ok := c.disk[id]
		if !ok {
			continue
		}
		delete(c.disk, id)
		c.size -= meta.size
		if err := os.Remove(meta.path); err != nil && !os.IsNotExist(err) {
			logging.Warn("Failed to remove evicted cache file",
				zap.String("cache_id", id),
				zap.Error(err),
			)
		}
		logging.Debug("Evicted cached content",
			zap.String("cache_id", id),
			zap.Int64("size", meta.size),
		)
	}
}

// writeFileAtomic writes data to path via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
