package board

import (
	"testing"
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func queueStore() *Store {
	s := NewStore()
	s.HydrateQueue(contract.QueueSnapshot{
		Vendors: []*domain.Vendor{{ID: 7, Name: "Corrugated Supply Co"}},
		Allotments: []*domain.VendorAllotment{
			{VendorID: 7, Category: domain.CategoryRSC, Quantity: 500},
			{VendorID: 7, Category: domain.CategoryDieCut, Quantity: 200},
		},
		Lines: []*domain.QueueLine{
			{ID: 1, VendorID: 7, Category: domain.CategoryRSC, Date: binDate, Seq: 1000, Quantity: 120},
			{ID: 2, VendorID: 7, Category: domain.CategoryRSC, Date: binDate, Seq: 2000, Quantity: 80},
			{ID: 3, VendorID: 7, Category: domain.CategoryDieCut, Date: binDate, Seq: 1000, Quantity: 50},
		},
	})
	return s
}

func TestEffectiveAllotment_DefaultAndOverride(t *testing.T) {
	s := queueStore()

	got, ovr := s.EffectiveAllotment(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 500, got)
	assert.False(t, ovr)

	s.Apply(contract.Mutation{Op: contract.OpSetOverride, SetOverride: &domain.AllotmentOverride{
		VendorID: 7, Category: domain.CategoryRSC, Date: binDate, Quantity: 650,
	}})

	got, ovr = s.EffectiveAllotment(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 650, got)
	assert.True(t, ovr)

	// Any other date still resolves the vendor default.
	other := binDate.AddDate(0, 0, 1)
	got, ovr = s.EffectiveAllotment(7, domain.CategoryRSC, other)
	assert.Equal(t, 500, got)
	assert.False(t, ovr)
}

func TestClearOverride_RestoresDefault(t *testing.T) {
	s := queueStore()
	s.Apply(contract.Mutation{Op: contract.OpSetOverride, SetOverride: &domain.AllotmentOverride{
		VendorID: 7, Category: domain.CategoryRSC, Date: binDate, Quantity: 650,
	}})
	s.Apply(contract.Mutation{Op: contract.OpClearOverride, ClearOverride: &contract.ClearOverride{
		VendorID: 7, Category: domain.CategoryRSC, Date: binDate,
	}})

	got, ovr := s.EffectiveAllotment(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 500, got)
	assert.False(t, ovr)
}

func TestBin_SumInvariantAfterMoves(t *testing.T) {
	s := queueStore()

	bin := s.Bin(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 200, bin.Scheduled)
	assert.Equal(t, 300, bin.Remaining())

	// Move line 3 from the die-cut bin into the RSC bin at the top.
	planner := NewPlanner(s)
	plan := planner.PlanQueueMove(3, 7, domain.CategoryRSC, binDate, 0)
	require.Equal(t, PlanQueueMove, plan.Kind)
	for _, m := range plan.Mutations {
		s.Apply(m)
	}

	rsc := s.Bin(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 250, rsc.Scheduled, "scheduled must equal the sum of line quantities")
	require.Len(t, rsc.Lines, 3)
	assert.Equal(t, int64(3), rsc.Lines[0].ID, "moved line lands at the top")

	dieCut := s.Bin(7, domain.CategoryDieCut, binDate)
	assert.Equal(t, 0, dieCut.Scheduled)
	assert.Empty(t, dieCut.Lines)

	// Ordinals inside the destination bin are fresh step multiples.
	for i, l := range rsc.Lines {
		assert.Equal(t, (i+1)*SeqStep, l.Seq)
	}
}

func TestBin_RemainingNeverNegative(t *testing.T) {
	s := queueStore()
	s.Apply(contract.Mutation{Op: contract.OpSetOverride, SetOverride: &domain.AllotmentOverride{
		VendorID: 7, Category: domain.CategoryRSC, Date: binDate, Quantity: 100,
	}})

	bin := s.Bin(7, domain.CategoryRSC, binDate)
	assert.Equal(t, 200, bin.Scheduled)
	assert.Equal(t, 0, bin.Remaining())
}

func TestBinsOn_SortedByVendorThenCategory(t *testing.T) {
	s := queueStore()
	bins := s.BinsOn(binDate)

	require.Len(t, bins, 2)
	assert.Equal(t, domain.CategoryDieCut, bins[0].Category)
	assert.Equal(t, domain.CategoryRSC, bins[1].Category)
}

func TestBin_EmptyBinSynthesized(t *testing.T) {
	s := queueStore()
	other := binDate.AddDate(0, 0, 3)

	bin := s.Bin(7, domain.CategoryRSC, other)
	require.NotNil(t, bin)
	assert.Equal(t, 500, bin.Allotment)
	assert.Equal(t, 0, bin.Scheduled)
	assert.Empty(t, bin.Lines)
}
