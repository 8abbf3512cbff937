package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()

	db, err := OpenSQLiteInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		DriverMemory: NewMemory(),
		DriverFile:   NewFile(filepath.Join(t.TempDir(), "theme.json")),
		DriverSQLite: setupSQLite(t),
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			require.False(t, ok, "fresh store should not hold %s", KeyTheme)

			require.NoError(t, s.Set(ctx, KeyTheme, "theme3"))
			require.NoError(t, s.Set(ctx, KeyMode, "light"))
			require.NoError(t, s.Set(ctx, KeyTheme, "theme4"))

			v, ok, err := s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "theme4", v)

			require.NoError(t, s.Delete(ctx, KeyTheme))
			require.NoError(t, s.Delete(ctx, KeyTheme))
			_, ok, err = s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			require.False(t, ok)

			v, ok, err = s.Get(ctx, KeyMode)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "light", v)

			require.NoError(t, s.Close())
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "theme.json")

	require.NoError(t, NewFile(path).Set(ctx, KeyTheme, "theme6"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	v, ok, err := NewFile(path).Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme6", v)
}

func TestFileStoreCorruptData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewFile(path)
	_, _, err := s.Get(ctx, KeyTheme)
	require.True(t, errors.Is(err, ErrCorrupt), "want ErrCorrupt, got %v", err)

	// Writing replaces the unreadable document.
	require.NoError(t, s.Set(ctx, KeyMode, "dark"))
	v, ok, err := s.Get(ctx, KeyMode)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "theme.db")

	s, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyTheme, "theme2"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme2", v)
}

func TestOpenRejectsBadDriver(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "redis", "x")
	require.Error(t, err)

	_, err = Open(ctx, DriverFile, "")
	require.Error(t, err)

	s, err := Open(ctx, DriverMemory, "")
	require.NoError(t, err)
	require.IsType(t, &Memory{}, s)
}
