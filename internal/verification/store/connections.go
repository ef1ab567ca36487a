package store

import (
	"sync"

	"vouch/internal/verification/models"
)

// ConnectionCache memoizes the peer connection created for each DID, plus the
// reverse connection-id lookup used by claim resolution. An entry is
// write-once: once populated it is never replaced, even if a later vendor
// session is recreated for the same DID. The reverse map stays 1:1 because of
// that write-once rule.
type ConnectionCache struct {
	mu      sync.RWMutex
	byDID   map[models.DID]*models.Connection
	byConn  map[string]models.DID
}

// NewConnectionCache constructs an empty cache.
func NewConnectionCache() *ConnectionCache {
	return &ConnectionCache{
		byDID:  make(map[models.DID]*models.Connection),
		byConn: make(map[string]models.DID),
	}
}

// GetByDID returns a copy of the cached connection for the DID, or ok=false.
func (c *ConnectionCache) GetByDID(did models.DID) (models.Connection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	conn, ok := c.byDID[did]
	if !ok {
		return models.Connection{}, false
	}
	return *conn, true
}

// PutIfAbsent inserts the connection for the DID and returns it, or returns
// the existing entry if one was already present. The presence check and
// insert happen under one lock so concurrent callers cannot both install a
// connection for the same DID.
func (c *ConnectionCache) PutIfAbsent(did models.DID, conn models.Connection) models.Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byDID[did]; ok {
		return *existing
	}
	conn.OwningDID = did
	stored := conn
	c.byDID[did] = &stored
	c.byConn[conn.ID] = did
	return conn
}

// ReverseLookup resolves a connection id back to its owning DID, or ok=false.
func (c *ConnectionCache) ReverseLookup(connectionID string) (models.DID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	did, ok := c.byConn[connectionID]
	return did, ok
}
