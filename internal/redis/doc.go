// Package redis provides the redis-backed score store, used when scores
// must survive process restarts without running a full database.
package redis
