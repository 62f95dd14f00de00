package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T, maxSizeMB, memoryItems int) *Cache {
	t.Helper()
	c, err := NewWithConfig(t.TempDir(), maxSizeMB, memoryItems)
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	return c
}

func TestCache_StoreAndGet(t *testing.T) {
	c := newTestCache(t, 1, 10)

	data := []byte("# Hello")
	id, err := c.Store(ContentMarkdown, "file:///tmp/hello.md", data, "text/markdown")
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if id == "" {
		t.Fatal("Store() returned empty id")
	}

	content, ok := c.Get(id)
	if !ok {
		t.Fatal("Get() did not find stored content")
	}
	if !bytes.Equal(content.Data, data) {
		t.Errorf("content.Data = %q, want %q", content.Data, data)
	}
	if content.Type != ContentMarkdown {
		t.Errorf("content.Type = %q, want markdown", content.Type)
	}
	if content.MIMEType != "text/markdown" {
		t.Errorf("content.MIMEType = %q", content.MIMEType)
	}
	if content.Size != len(data) {
		t.Errorf("content.Size = %d, want %d", content.Size, len(data))
	}
}

func TestCache_Get_SnapshotIsolation(t *testing.T) {
	c := newTestCache(t, 1, 10)

	id, err := c.Store(ContentMarkdown, "a", []byte("original"), "text/markdown")
	if err != nil {
		t.Fatal(err)
	}

	first, ok := c.Get(id)
	if !ok {
		t.Fatal("Get() did not find stored content")
	}
	first.Data[0] = 'X'

	second, ok := c.Get(id)
	if !ok {
		t.Fatal("Get() did not find stored content on re-read")
	}
	if string(second.Data) != "original" {
		t.Errorf("cached bytes mutated through a returned value: %q", second.Data)
	}
}

func TestCache_Get_Missing(t *testing.T) {
	c := newTestCache(t, 1, 10)
	if _, ok := c.Get("no-such-id"); ok {
		t.Error("Get() found content for an unknown id")
	}
}

func TestCache_DiskFallback(t *testing.T) {
	// Memory tier of one item: storing a second payload pushes the first
	// out of memory but it must remain readable from disk.
	c := newTestCache(t, 10, 1)

	first, err := c.Store(ContentImage, "mem", []byte("first"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Store(ContentImage, "mem", []byte("second"), "image/png"); err != nil {
		t.Fatal(err)
	}

	stats := c.Stats()
	if stats.MemoryItems != 1 {
		t.Errorf("MemoryItems = %d, want 1", stats.MemoryItems)
	}
	if stats.DiskItems != 2 {
		t.Errorf("DiskItems = %d, want 2", stats.DiskItems)
	}

	content, ok := c.Get(first)
	if !ok {
		t.Fatal("payload evicted from memory was not served from disk")
	}
	if string(content.Data) != "first" {
		t.Errorf("content.Data = %q, want first", content.Data)
	}
	if content.Type != ContentImage || content.MIMEType != "image/png" {
		t.Errorf("disk hit lost metadata: %+v", content)
	}
}

func TestCache_BudgetEviction(t *testing.T) {
	c := newTestCache(t, 1, 10) // 1 MB budget
	payload := make([]byte, 600*1024)

	first, err := c.Store(ContentVideo, "a", payload, "video/mp4")
	if err != nil {
		t.Fatal(err)
	}
	// Second store exceeds the budget; the first entry must be evicted.
	second, err := c.Store(ContentVideo, "b", payload, "video/mp4")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(first); ok {
		t.Error("oldest entry survived a budget eviction")
	}
	if _, ok := c.Get(second); !ok {
		t.Error("newest entry missing after eviction")
	}

	stats := c.Stats()
	if stats.TotalSizeBytes > stats.MaxSizeBytes {
		t.Errorf("size %d exceeds budget %d", stats.TotalSizeBytes, stats.MaxSizeBytes)
	}
	if stats.DiskItems != 1 {
		t.Errorf("DiskItems = %d, want 1", stats.DiskItems)
	}
}

func TestCache_Remove(t *testing.T) {
	dir := t.TempDir()
	c, err := NewWithConfig(dir, 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	id, err := c.Store(ContentAudio, "a", []byte("pcm"), "audio/wav")
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Remove(id); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, ok := c.Get(id); ok {
		t.Error("content still readable after Remove")
	}
	if _, err := os.Stat(filepath.Join(dir, id)); !os.IsNotExist(err) {
		t.Error("backing file still exists after Remove")
	}

	// Removing an absent id is a no-op.
	if err := c.Remove(id); err != nil {
		t.Errorf("Remove() of absent id errored: %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := NewWithConfig(dir, 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Store(ContentPDF, "x", []byte("pdf"), "application/pdf"); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	stats := c.Stats()
	if stats.MemoryItems != 0 || stats.DiskItems != 0 || stats.TotalSizeBytes != 0 {
		t.Errorf("cache not empty after Clear: %+v", stats)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("%d files left in cache dir after Clear", len(files))
	}
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(t, 1, 10)

	if stats := c.Stats(); stats.MemoryItems != 0 || stats.DiskItems != 0 || stats.TotalSizeBytes != 0 {
		t.Errorf("fresh cache stats = %+v, want zeros", stats)
	}

	if _, err := c.Store(ContentImage, "a", []byte("12345"), "image/png"); err != nil {
		t.Fatal(err)
	}

	stats := c.Stats()
	if stats.MemoryItems != 1 || stats.DiskItems != 1 {
		t.Errorf("stats = %+v, want one item in each tier", stats)
	}
	if stats.TotalSizeBytes != 5 {
		t.Errorf("TotalSizeBytes = %d, want 5", stats.TotalSizeBytes)
	}
	if stats.MaxSizeBytes != 1024*1024 {
		t.Errorf("MaxSizeBytes = %d, want 1 MB", stats.MaxSizeBytes)
	}
}
