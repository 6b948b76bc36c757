package session

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/storerating/store-rating/internal/core/domain"
)

func newTestGate(t *testing.T, slot *memorySlot) *Gate {
	t.Helper()
	return NewGate(context.Background(), NewStore(slot, zerolog.Nop()), zerolog.Nop())
}

func TestGate_StartsFromPersistedState(t *testing.T) {
	slot := newMemorySlot()
	slot.values[KeyAuthToken] = "tok"
	slot.values[KeyUserData] = `{"id":"u1","name":"Test User","email":"test@example.com","address":"123 Test St","role":"Normal User"}`

	g := newTestGate(t, slot)

	require.True(t, g.IsAuthenticated())
	id, ok := g.CurrentIdentity()
	require.True(t, ok)
	require.Equal(t, "u1", id.ID)
	require.Equal(t, "tok", g.Token())
}

func TestGate_LoginThenRead(t *testing.T) {
	slot := newMemorySlot()
	g := newTestGate(t, slot)
	require.False(t, g.IsAuthenticated())

	require.NoError(t, g.Login(context.Background(), sampleIdentity()))

	require.True(t, g.IsAuthenticated())
	id, ok := g.CurrentIdentity()
	require.True(t, ok)
	require.Equal(t, sampleIdentity(), id)
	require.NotEmpty(t, g.Token())

	// A fresh process sees the same session.
	reloaded := newTestGate(t, slot)
	require.True(t, reloaded.IsAuthenticated())
	require.Equal(t, g.Token(), reloaded.Token())
}

func TestGate_ReLoginReplacesIdentity(t *testing.T) {
	g := newTestGate(t, newMemorySlot())
	require.NoError(t, g.LoginWithToken(context.Background(), sampleIdentity(), "a"))

	next := sampleIdentity()
	next.ID = "u2"
	require.NoError(t, g.LoginWithToken(context.Background(), next, "b"))

	id, _ := g.CurrentIdentity()
	require.Equal(t, "u2", id.ID)
	require.Equal(t, "b", g.Token())
}

func TestGate_RejectsIncompleteIdentity(t *testing.T) {
	g := newTestGate(t, newMemorySlot())

	err := g.Login(context.Background(), domain.Identity{ID: "u1"})

	require.ErrorIs(t, err, domain.ErrIncompleteIdentity)
	require.False(t, g.IsAuthenticated())
	_, ok := g.CurrentIdentity()
	require.False(t, ok)
}

func TestGate_LogoutIsIdempotent(t *testing.T) {
	slot := newMemorySlot()
	g := newTestGate(t, slot)

	require.NoError(t, g.Logout(context.Background()))
	require.False(t, g.IsAuthenticated())

	require.NoError(t, g.Login(context.Background(), sampleIdentity()))
	require.NoError(t, g.Logout(context.Background()))
	require.NoError(t, g.Logout(context.Background()))

	require.False(t, g.IsAuthenticated())
	_, ok := g.CurrentIdentity()
	require.False(t, ok)
	require.Empty(t, g.Token())
	require.Empty(t, slot.values)
}

func TestGate_PersistenceFailureKeepsLogin(t *testing.T) {
	slot := newMemorySlot()
	slot.setErr = errSlotDown
	g := newTestGate(t, slot)

	err := g.Login(context.Background(), sampleIdentity())

	require.ErrorIs(t, err, domain.ErrPersistence)
	require.True(t, g.IsAuthenticated())
}

func TestGate_ConcurrentLoginsNeverDiverge(t *testing.T) {
	g := newTestGate(t, newMemorySlot())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%3 == 0 {
				_ = g.Logout(context.Background())
				return
			}
			_ = g.Login(context.Background(), sampleIdentity())
		}(i)
	}
	wg.Wait()

	_, ok := g.CurrentIdentity()
	require.Equal(t, g.IsAuthenticated(), ok)
}
