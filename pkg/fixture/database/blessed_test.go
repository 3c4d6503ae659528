package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/goldfix/pkg/model"
)

func TestBlessedManager(t *testing.T) {
	t.Run("NewBlessedManager", func(t *testing.T) {
		db := NewBlessedManager()
		assert.NotNil(t, db)
		assert.Equal(t, "1", db.FormatVersion)
		assert.WithinDuration(t, time.Now(), db.LastUpdate, time.Second)
		assert.Empty(t, db.Entries)
	})

	t.Run("AppendAndFind", func(t *testing.T) {
		db := NewBlessedManager()
		entry := &model.BlessEntry{
			Suite:       "extractmethod",
			Case:        "MethodIndent",
			NewChecksum: "abc123",
		}

		t.Run("AppendEntry", func(t *testing.T) {
			db.AppendEntry(entry)
			assert.Len(t, db.Entries, 1)
			assert.Equal(t, entry, db.Entries[0])
			assert.False(t, entry.BlessedAt.IsZero(), "append should stamp BlessedAt")
		})

		t.Run("FindLatest", func(t *testing.T) {
			found := db.FindLatest("extractmethod", "MethodIndent")
			require.NotNil(t, found)
			assert.Equal(t, "abc123", found.NewChecksum)

			assert.Nil(t, db.FindLatest("extractmethod", "non-existent"))
			assert.Nil(t, db.FindLatest("other-suite", "MethodIndent"))
		})

		t.Run("FindLatestReturnsNewest", func(t *testing.T) {
			db.AppendEntry(&model.BlessEntry{
				Suite:       "extractmethod",
				Case:        "MethodIndent",
				OldChecksum: "abc123",
				NewChecksum: "def456",
			})

			found := db.FindLatest("extractmethod", "MethodIndent")
			require.NotNil(t, found)
			assert.Equal(t, "def456", found.NewChecksum)
			assert.Len(t, db.GetEntries(), 2, "re-blessing appends instead of rewriting")
		})
	})

	t.Run("LoadAndSaveDatabase", func(t *testing.T) {
		tempDir := t.TempDir()
		dbPath := filepath.Join(tempDir, "blessed.json")

		db := NewBlessedManager()
		db.AppendEntry(&model.BlessEntry{
			Suite:       "extractmethod",
			Case:        "MethodIndent",
			NewChecksum: "abc123",
			Note:        "tool output changed after indent fix",
		})

		t.Run("SaveDatabaseTo", func(t *testing.T) {
			err := db.SaveDatabaseTo(dbPath)
			require.NoError(t, err)
			_, err = os.Stat(dbPath)
			assert.False(t, os.IsNotExist(err), "journal file should exist")
		})

		t.Run("LoadDatabaseFrom", func(t *testing.T) {
			newDB := NewBlessedManager()
			err := newDB.LoadDatabaseFrom(dbPath)
			require.NoError(t, err)

			entries := newDB.GetEntries()
			require.Len(t, entries, 1)
			assert.Equal(t, "MethodIndent", entries[0].Case)
			assert.Equal(t, "tool output changed after indent fix", entries[0].Note)
		})

		t.Run("LoadNonExistentDatabase", func(t *testing.T) {
			newDB := NewBlessedManager()
			err := newDB.LoadDatabaseFrom(filepath.Join(tempDir, "nonexistent.json"))
			require.NoError(t, err)
			assert.Empty(t, newDB.Entries)
		})

		t.Run("LoadInvalidDatabase", func(t *testing.T) {
			err := os.WriteFile(dbPath, []byte("invalid json"), 0644)
			require.NoError(t, err)

			newDB := NewBlessedManager()
			err = newDB.LoadDatabaseFrom(dbPath)
			require.Error(t, err)
		})

		t.Run("SaveInvalidPath", func(t *testing.T) {
			err := db.SaveDatabaseTo("/nonexistent/path/blessed.json")
			require.Error(t, err)
		})

		t.Run("RelativePathRejected", func(t *testing.T) {
			err := db.SaveDatabaseTo("blessed.json")
			require.Error(t, err)
			err = db.LoadDatabaseFrom("blessed.json")
			require.Error(t, err)
		})
	})

	t.Run("FilteredEntries", func(t *testing.T) {
		db := NewBlessedManager()
		db.AppendEntry(&model.BlessEntry{Suite: "extractmethod", Case: "MethodIndent"})
		db.AppendEntry(&model.BlessEntry{Suite: "extractmethod", Case: "SimpleCall"})
		db.AppendEntry(&model.BlessEntry{Suite: "inline", Case: "Basic"})

		filtered := db.FilteredEntries("extractmethod")
		assert.Len(t, filtered, 2)

		filtered = db.FilteredEntries("inline")
		require.Len(t, filtered, 1)
		assert.Equal(t, "Basic", filtered[0].Case)

		assert.Empty(t, db.FilteredEntries("nonexistent"))
		assert.Len(t, db.FilteredEntries(""), 3)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		db := NewBlessedManager()
		const numGoroutines = 10
		done := make(chan bool, numGoroutines)

		for i := 0; i < numGoroutines; i++ {
			go func(id int) {
				db.AppendEntry(&model.BlessEntry{
					Suite: "extractmethod",
					Case:  fmt.Sprintf("Case%d", id),
				})
				done <- true
			}(i)
		}

		for i := 0; i < numGoroutines; i++ {
			<-done
		}

		assert.Len(t, db.GetEntries(), numGoroutines)
	})
}
