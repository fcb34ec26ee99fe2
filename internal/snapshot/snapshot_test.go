package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := repository.NewStore()
	catalog := repository.NewShowingCatalog(store)
	require.NoError(t, catalog.Add(&model.Showing{
		ID:            model.UnsavedID,
		Title:         "Joker: Folie à Deux",
		StartDateTime: time.Date(2024, 11, 15, 14, 0, 0, 0, time.UTC),
		Duration:      2*time.Hour + 30*time.Minute,
		AgeRestricted: true,
		Seats:         model.NewSeatMap(6, 12),
	}))
	_, err := store.CommitSale(0, []model.Seat{{Row: 4, Col: 3}}, "John Doe",
		time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "boxoffice.json")
	require.NoError(t, Save(path, store.Export()))

	state, err := Load(path)
	require.NoError(t, err)

	restored := repository.NewStore()
	require.NoError(t, restored.Restore(state))

	showing, err := repository.NewShowingCatalog(restored).GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, "Joker: Folie à Deux", showing.Title)
	assert.True(t, showing.AgeRestricted)
	assert.Equal(t, 1, showing.TicketsSold)
	occupied, err := showing.Seats.IsOccupied(4, 3)
	require.NoError(t, err)
	assert.True(t, occupied)

	sellings := repository.NewSalesLedger(restored).ListAll()
	require.Len(t, sellings, 1)
	assert.Equal(t, "John Doe", sellings[0].Customer)
}

func TestLoadMissingSnapshot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxoffice.json")
	require.NoError(t, Save(path, repository.NewStore().Export()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "boxoffice.json", entries[0].Name())
}
