package memory_test

import (
	"context"
	"testing"

	"github.com/Anmol09876/abacus/pkg/adapters/memory"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/ports"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	state := domain.NewState("iso")
	state.Memory.Set("M", "5")
	require.NoError(t, store.Save(ctx, "iso", state))

	// Mutating the original after Save must not leak into the store.
	state.Memory.Set("M", "99")

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	require.Equal(t, "5", loaded.Memory["M"])

	// Mutating a loaded copy must not leak either.
	loaded.Memory.Set("M", "42")
	again, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	require.Equal(t, "5", again.Memory["M"])
}
