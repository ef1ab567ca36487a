package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/verification/models"
)

func TestSessionRegistryOverwrites(t *testing.T) {
	r := NewSessionRegistry()
	did := models.DID("did:example:alice")

	_, ok := r.Get(did)
	assert.False(t, ok)

	r.Set(did, "s1")
	got, ok := r.Get(did)
	require.True(t, ok)
	assert.Equal(t, "s1", got)

	// Overwrite, never append
	r.Set(did, "s2")
	got, ok = r.Get(did)
	require.True(t, ok)
	assert.Equal(t, "s2", got)
}

func TestSessionRegistryObserveStatus(t *testing.T) {
	r := NewSessionRegistry()
	did := models.DID("did:example:alice")
	r.Set(did, "s1")

	polledAt := time.Now()
	r.ObserveStatus(did, "s1", models.StatusPending, polledAt)

	session, ok := r.Find(did)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, session.LastKnownStatus)
	assert.Equal(t, polledAt, session.LastPolledAt)

	// Stale observation for a superseded session is dropped.
	r.Set(did, "s2")
	r.ObserveStatus(did, "s1", models.StatusApproved, time.Now())
	session, _ = r.Find(did)
	assert.Empty(t, session.LastKnownStatus)
}

func TestConnectionCachePutIfAbsentIsWriteOnce(t *testing.T) {
	c := NewConnectionCache()
	did := models.DID("did:example:alice")

	first := c.PutIfAbsent(did, models.Connection{ID: "c1", URL: "https://wallet/c1"})
	assert.Equal(t, "c1", first.ID)
	assert.Equal(t, did, first.OwningDID)

	// A second insert for the same DID yields the original entry.
	second := c.PutIfAbsent(did, models.Connection{ID: "c2", URL: "https://wallet/c2"})
	assert.Equal(t, "c1", second.ID)

	got, ok := c.GetByDID(did)
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID)

	// Reverse map only knows the winning connection.
	owner, ok := c.ReverseLookup("c1")
	require.True(t, ok)
	assert.Equal(t, did, owner)
	_, ok = c.ReverseLookup("c2")
	assert.False(t, ok)
}

func TestConnectionCacheConcurrentPutIfAbsent(t *testing.T) {
	c := NewConnectionCache()
	did := models.DID("did:example:alice")

	var wg sync.WaitGroup
	winners := make([]string, 50)
	for i := range 50 {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			conn := c.PutIfAbsent(did, models.Connection{ID: fmt.Sprintf("c%d", idx), URL: "https://wallet"})
			winners[idx] = conn.ID
		}(i)
	}
	wg.Wait()

	// All callers observed the same winning connection.
	for _, id := range winners {
		assert.Equal(t, winners[0], id)
	}
}

func TestIssuanceGateIdempotent(t *testing.T) {
	g := NewIssuanceGate()
	did := models.DID("did:example:alice")

	assert.False(t, g.IsIssued(did))

	g.MarkIssued(did)
	assert.True(t, g.IsIssued(did))

	g.MarkIssued(did)
	assert.True(t, g.IsIssued(did))

	assert.False(t, g.IsIssued(models.DID("did:example:bob")))
}
