package config

import "fmt"

type CacheKeyStruct struct{}

// SessionKey returns the cache key holding the active token jti for a user.
func (r *CacheKeyStruct) SessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// CatalogEventsChannel is the Redis Pub/Sub channel carrying catalog change events.
func (r *CacheKeyStruct) CatalogEventsChannel() string {
	return "catalog:events"
}

var CacheKey = &CacheKeyStruct{}

type QueueKeyStruct struct {
	VideoViewQueue string
}

var QueueKey = &QueueKeyStruct{
	VideoViewQueue: "video_view_queue",
}
