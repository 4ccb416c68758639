// Package cache integrates Redis: a client constructor with error metrics,
// a cache-aside decorator for profile lookups and request rate limiters.
package cache
