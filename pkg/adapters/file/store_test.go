package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Anmol09876/abacus/pkg/adapters/file"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/ports"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	require.Equal(t, filepath.Join(".abacus", "sessions"), store.BasePath)
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "desk", domain.NewState("desk")))
	require.NoError(t, store.Save(ctx, "desk", domain.NewState("desk"))) // overwrite path

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "desk.json", entries[0].Name())
}
