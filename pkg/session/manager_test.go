package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.State
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.State)
	}
	clone := *state
	s.data[sessionID] = &clone
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.data[sessionID]; ok {
		clone := *state
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	_ = manager.Save(ctx, id, domain.NewState(id))

	var wg sync.WaitGroup
	concurrentWrites := 10

	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Save(ctx, id, domain.NewState(id))
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
}

func TestManager_LoadOrStart(t *testing.T) {
	// Verify atomic creation
	store := &SlowStore{}
	manager := session.NewManager(store, session.WithDefaultMode(domain.ModeRad))
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	// Launch 2 routines trying to init same session
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, state)
		}()
	}
	wg.Wait()

	// Should exist and carry the configured defaults
	state, err := manager.Load(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, domain.ModeRad, state.Mode)
	assert.Equal(t, domain.EmptyDisplay, state.Display)
}

func TestManager_Update(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "increments"

	_, err := manager.LoadOrStart(ctx, id)
	require.NoError(t, err)

	// Concurrent read-modify-write cycles must not lose updates.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(state *domain.State) error {
				state.Input += "1"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.Input, 10)
}

func TestManager_UpdateAbortsOnError(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "abort"

	_, err := manager.LoadOrStart(ctx, id)
	require.NoError(t, err)

	_, err = manager.Update(ctx, id, func(state *domain.State) error {
		state.Input = "should-not-persist"
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, state.Input)
}
