// Package cache provides a small generic LRU cache safe for concurrent use.
//
//	c := cache.NewLRU[string, raster.Image](64)
//	c.Put(key, img)
//	img, ok := c.Get(key)
//
// Get and Put both mark an entry as recently used. Once the cache holds more
// than its capacity, Put drops the least recently used entry and hands it to
// the eviction callback, if one is set.
package cache
