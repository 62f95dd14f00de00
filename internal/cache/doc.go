// Package cache provides a bounded content store for media payloads
// awaiting casting.
//
// Content is held in two tiers: a fixed-count in-memory LRU for fast reads,
// and files in the cache directory for persistence. Every stored payload is
// written to disk; payloads pushed out of the memory tier remain readable
// and are promoted back into memory on access. A total byte budget (default
// 500 MB) is enforced at store time by evicting least-recently-used entries
// together with their files.
//
// The cache is independent of device discovery: neither component calls the
// other.
//
// # Usage Example
//
//	c, err := cache.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id, err := c.Store(cache.ContentImage, "file:///tmp/poster.png", data, "image/png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if content, ok := c.Get(id); ok {
//	    fmt.Printf("%d bytes of %s\n", content.Size, content.MIMEType)
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package cache
