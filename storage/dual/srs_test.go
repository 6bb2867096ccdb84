package dual

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSrsCardCRUD(t *testing.T) {
	repo := NewSrsRepository(newTestStore(t))
	ctx := context.Background()

	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	saved, err := repo.SaveSrsCard(ctx, &core.SrsCard{
		MemoryId: "m1",
		DueAt:    &due,
		Ease:     2.5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.Id)

	got, err := repo.GetSrsCardByMemoryID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, got.Id)

	_, err = repo.GetSrsCardByMemoryID(ctx, "m9")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, repo.DeleteSrsCard(ctx, saved.Id))
	cards, err := repo.GetSrsCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestGetDueCardsBoundary(t *testing.T) {
	repo := NewSrsRepository(newTestStore(t))
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.SaveSrsCard(ctx, &core.SrsCard{Id: "s1", MemoryId: "m1", DueAt: &at})
	require.NoError(t, err)

	// Due exactly at now: included.
	due, err := repo.GetDueCards(ctx, at)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "s1", due[0].Id)

	// One instant before: excluded.
	due, err = repo.GetDueCards(ctx, at.Add(-time.Second))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestGetDueCardsOrderingAndCoarseDates(t *testing.T) {
	repo := NewSrsRepository(newTestStore(t))
	ctx := context.Background()

	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	later := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cards := []*core.SrsCard{
		{Id: "precise-later", MemoryId: "m1", DueAt: &later},
		{Id: "precise-earlier", MemoryId: "m2", DueAt: &earlier},
		// Coarse date resolves to local midnight, between the two above.
		{Id: "coarse", MemoryId: "m3", DueDate: "2025-06-02"},
		// Not yet due.
		{Id: "future", MemoryId: "m4", DueDate: "2025-06-04"},
		// Never scheduled: excluded entirely.
		{Id: "unscheduled", MemoryId: "m5"},
	}
	for _, card := range cards {
		_, err := repo.SaveSrsCard(ctx, card)
		require.NoError(t, err)
	}

	due, err := repo.GetDueCards(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, "precise-earlier", due[0].Id)
	assert.Equal(t, "coarse", due[1].Id)
	assert.Equal(t, "precise-later", due[2].Id)
}

func TestSaveSrsCardValidates(t *testing.T) {
	repo := NewSrsRepository(newTestStore(t))

	_, err := repo.SaveSrsCard(context.Background(), &core.SrsCard{DueDate: "2025-06-01"})
	assert.ErrorIs(t, err, core.ErrInvalidSrsCard)
}
