// Package cache provides a sharded, thread-safe LRU cache.
//
// imagekit uses it for data that is expensive to recompute and shared by
// every worker of a batch run: rasterized glyph coverage masks and shaped
// kerning pairs. A batch usually stamps the same watermark on many images
// of the same size, so most lookups after the first image are hits.
//
//	c := cache.NewSharded[maskKey, *image.Alpha](256)
//	mask := c.GetOrCreate(key, func() *image.Alpha { return rasterize(g) })
//
// ShardedCache is safe for concurrent use and must not be copied after
// creation (it contains mutexes).
package cache
