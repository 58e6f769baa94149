package board

import (
	"testing"

	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResequenceSlot_SoleOccupant(t *testing.T) {
	a := outbound(1, "Acme")
	batch := ResequenceSlot(nil, []domain.Ref{a.Ref()}, InsertBottom)

	require.Len(t, batch, 1)
	assert.Equal(t, a.Ref(), batch[0].Ref)
	require.NotNil(t, batch[0].Seq)
	assert.Equal(t, SeqStep, *batch[0].Seq)
}

func TestResequenceSlot_InsertBottom(t *testing.T) {
	occ := []*domain.Order{
		at(outbound(2, "B"), testDate, &truck1, 2000),
		at(outbound(1, "A"), testDate, &truck1, 1000),
	}
	moved := domain.Ref{Kind: domain.OrderOutbound, ID: 3}

	batch := ResequenceSlot(occ, []domain.Ref{moved}, InsertBottom)

	require.Len(t, batch, 3)
	assert.Equal(t, int64(1), batch[0].Ref.ID, "staying occupants sorted by current ordinal")
	assert.Equal(t, int64(2), batch[1].Ref.ID)
	assert.Equal(t, moved, batch[2].Ref)
	for i, r := range batch {
		assert.Equal(t, (i+1)*SeqStep, *r.Seq)
	}
}

func TestResequenceSlot_InsertTop(t *testing.T) {
	occ := []*domain.Order{
		at(outbound(1, "A"), testDate, &truck1, 1000),
		at(outbound(2, "B"), testDate, &truck1, 2000),
	}
	moved := domain.Ref{Kind: domain.OrderOutbound, ID: 3}

	batch := ResequenceSlot(occ, []domain.Ref{moved}, InsertTop)

	require.Len(t, batch, 3)
	assert.Equal(t, moved, batch[0].Ref)
	assert.Equal(t, SeqStep, *batch[0].Seq)
	assert.Equal(t, int64(1), batch[1].Ref.ID)
	assert.Equal(t, int64(2), batch[2].Ref.ID)
}

func TestResequenceSlot_MovedAlreadyOccupant(t *testing.T) {
	// Reordering within the same slot: the moved order is filtered from the
	// staying set, not duplicated.
	occ := []*domain.Order{
		at(outbound(1, "A"), testDate, &truck1, 1000),
		at(outbound(2, "B"), testDate, &truck1, 2000),
		at(outbound(3, "C"), testDate, &truck1, 3000),
	}

	batch := ResequenceSlot(occ, []domain.Ref{occ[0].Ref()}, InsertBottom)

	require.Len(t, batch, 3)
	assert.Equal(t, int64(2), batch[0].Ref.ID)
	assert.Equal(t, int64(3), batch[1].Ref.ID)
	assert.Equal(t, int64(1), batch[2].Ref.ID)
}

func TestResequenceSlot_MultipleMovedKeepOrder(t *testing.T) {
	occ := []*domain.Order{at(outbound(9, "X"), testDate, &truck1, 1000)}
	moved := []domain.Ref{
		{Kind: domain.OrderOutbound, ID: 1},
		{Kind: domain.OrderOutbound, ID: 2},
	}

	batch := ResequenceSlot(occ, moved, InsertTop)

	require.Len(t, batch, 3)
	assert.Equal(t, int64(1), batch[0].Ref.ID)
	assert.Equal(t, int64(2), batch[1].Ref.ID)
	assert.Equal(t, int64(9), batch[2].Ref.ID)
}

func TestResequenceLines_SpliceAtIndex(t *testing.T) {
	lines := []*domain.QueueLine{
		{ID: 1, VendorID: 7, Category: domain.CategoryRSC, Date: testDate, Seq: 1000, Quantity: 100},
		{ID: 2, VendorID: 7, Category: domain.CategoryRSC, Date: testDate, Seq: 2000, Quantity: 50},
		{ID: 3, VendorID: 7, Category: domain.CategoryRSC, Date: testDate, Seq: 3000, Quantity: 75},
	}
	dest := contractLineSeq(7, domain.CategoryRSC, testDate)

	batch := resequenceLines(lines, lines[2], 1, dest)

	require.Len(t, batch, 3)
	assert.Equal(t, int64(1), batch[0].ID)
	assert.Equal(t, int64(3), batch[1].ID, "moved line lands at index 1")
	assert.Equal(t, int64(2), batch[2].ID)
	for i, l := range batch {
		assert.Equal(t, (i+1)*SeqStep, l.Seq)
	}
}

func TestResequenceLines_IndexClamped(t *testing.T) {
	lines := []*domain.QueueLine{
		{ID: 1, VendorID: 7, Category: domain.CategoryRSC, Date: testDate, Seq: 1000},
	}
	moved := &domain.QueueLine{ID: 2, VendorID: 8, Category: domain.CategoryRSC, Date: testDate, Seq: 1000}
	dest := contractLineSeq(7, domain.CategoryRSC, testDate)

	batch := resequenceLines(lines, moved, 99, dest)

	require.Len(t, batch, 2)
	assert.Equal(t, int64(2), batch[1].ID)
	assert.Equal(t, int64(7), batch[1].VendorID, "moved line adopts the destination bin")
	assert.Equal(t, int64(7), batch[0].VendorID, "staying line keeps its own bin")
}
