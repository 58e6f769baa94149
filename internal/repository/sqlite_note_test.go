package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/alexanderramin/haulboard/internal/testutil"
)

func TestNoteRepo_TargetRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(database)
	ctx := context.Background()

	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	truckID := int64(7)

	cases := []struct {
		name   string
		target domain.NoteTarget
	}{
		{"cell", domain.CellTarget(domain.NewPlacement(date, &truckID))},
		{"dock cell", domain.CellTarget(domain.NewPlacement(date, nil))},
		{"order", domain.OrderTarget(domain.Ref{Kind: domain.OrderOutbound, ID: 42})},
		{"run", domain.RunTarget("run-abc")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := testutil.NewTestNote("check pallet count", tc.target)
			require.NoError(t, repo.Create(ctx, n))

			got, err := repo.GetByID(ctx, n.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.target.Kind, got.Target.Kind)
			switch tc.target.Kind {
			case domain.NoteOnCell:
				require.NotNil(t, got.Target.Cell)
				assert.Equal(t, tc.target.Cell.Key(), got.Target.Cell.Key())
			case domain.NoteOnOrder:
				require.NotNil(t, got.Target.Order)
				assert.Equal(t, *tc.target.Order, *got.Target.Order)
			case domain.NoteOnRun:
				assert.Equal(t, tc.target.RunID, got.Target.RunID)
			}
		})
	}
}

func TestNoteRepo_ListWindowFiltersCellNotesOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(database)
	ctx := context.Background()

	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	truckID := int64(7)

	inWindow := testutil.NewTestNote("this week",
		domain.CellTarget(domain.NewPlacement(monday, &truckID)))
	outside := testutil.NewTestNote("next month",
		domain.CellTarget(domain.NewPlacement(monday.AddDate(0, 1, 0), &truckID)))
	onOrder := testutil.NewTestNote("rides along",
		domain.OrderTarget(domain.Ref{Kind: domain.OrderOutbound, ID: 42}))
	for _, n := range []*domain.Note{inWindow, outside, onOrder} {
		require.NoError(t, repo.Create(ctx, n))
	}

	got, err := repo.ListWindow(ctx, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, inWindow.ID)
	assert.Contains(t, ids, onOrder.ID)
}

func TestNoteRepo_UpdateAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(database)
	ctx := context.Background()

	n := testutil.NewTestNote("draft", domain.RunTarget("run-abc"))
	require.NoError(t, repo.Create(ctx, n))

	n.Content = "final"
	n.Color = domain.NotePink
	require.NoError(t, repo.Update(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, domain.NotePink, got.Color)

	require.NoError(t, repo.Delete(ctx, n.ID))
	_, err = repo.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
