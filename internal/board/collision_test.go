package board

import (
	"testing"

	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_UnscheduleAreaRequiresPointerContainment(t *testing.T) {
	o := at(outbound(1, "Acme"), testDate, &truck1, SeqStep)
	payload := OrderPayload(o)
	cell := domain.NewPlacement(testDate, &truck2)

	targets := []DropTarget{
		unscheduleTarget(Rect{X: 0, Y: 0, W: 20, H: 40}),
		cellTarget(cell, Rect{X: 18, Y: 5, W: 20, H: 6}),
	}

	// Drag rect overlaps the unschedule area but the pointer is outside it:
	// the cell must win.
	got := Resolve(payload, Point{X: 25, Y: 7}, Rect{X: 15, Y: 5, W: 12, H: 3}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetCell, got.Kind)

	// Pointer inside the unschedule area wins unconditionally.
	got = Resolve(payload, Point{X: 5, Y: 7}, Rect{X: 2, Y: 5, W: 12, H: 3}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetUnscheduleArea, got.Kind)
}

func TestResolve_UnscheduleAreaIgnoredForRunPayload(t *testing.T) {
	r := run("r1", testDate, truck1)
	m := inRun(at(outbound(1, "Acme"), testDate, &truck1, SeqStep), r.ID)
	payload := RunPayload(r, []*domain.Order{m})

	targets := []DropTarget{
		unscheduleTarget(Rect{X: 0, Y: 0, W: 20, H: 40}),
	}

	// A run hovering the unschedule area only matches via the last-resort
	// fallback; pointer containment rule is single-order only, so the
	// fallback intersection still returns it rather than nothing.
	got := Resolve(payload, Point{X: 5, Y: 7}, Rect{X: 2, Y: 5, W: 12, H: 3}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetUnscheduleArea, got.Kind)
}

func TestResolve_OrderPrefersCardsOverCell(t *testing.T) {
	o := outbound(1, "Acme")
	other := at(outbound(2, "Globex"), testDate, &truck1, SeqStep)
	cell := domain.NewPlacement(testDate, &truck1)

	targets := []DropTarget{
		cellTarget(cell, Rect{X: 10, Y: 0, W: 20, H: 10}),
		orderTarget(other.Ref(), Rect{X: 12, Y: 2, W: 16, H: 2}),
	}

	got := Resolve(OrderPayload(o), Point{X: 13, Y: 2}, Rect{X: 11, Y: 2, W: 10, H: 2}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetOrderCard, got.Kind, "hover-to-merge beats the cell")
}

func TestResolve_RunPayloadFallsThroughToCell(t *testing.T) {
	r := run("r1", testDate, truck1)
	payload := RunPayload(r, nil)
	cell := domain.NewPlacement(testDate, &truck2)

	targets := []DropTarget{
		orderTarget(domain.Ref{Kind: domain.OrderOutbound, ID: 9}, Rect{X: 12, Y: 2, W: 16, H: 2}),
		cellTarget(cell, Rect{X: 10, Y: 0, W: 20, H: 10}),
	}

	got := Resolve(payload, Point{X: 13, Y: 2}, Rect{X: 11, Y: 2, W: 10, H: 2}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetCell, got.Kind, "containers never merge onto order cards by hover")
}

func TestResolve_ExcludesSelfAndOwnMembers(t *testing.T) {
	r := run("r1", testDate, truck1)
	m1 := inRun(at(outbound(1, "Acme"), testDate, &truck1, SeqStep), r.ID)
	m2 := inRun(at(outbound(2, "Acme"), testDate, &truck1, 2*SeqStep), r.ID)
	payload := RunPayload(r, []*domain.Order{m1, m2})

	targets := []DropTarget{
		runTarget(r.ID, Rect{X: 0, Y: 0, W: 20, H: 4}),
		orderTarget(m1.Ref(), Rect{X: 0, Y: 0, W: 20, H: 2}),
		orderTarget(m2.Ref(), Rect{X: 0, Y: 2, W: 20, H: 2}),
	}

	got := Resolve(payload, Point{X: 5, Y: 1}, Rect{X: 0, Y: 0, W: 10, H: 3}, targets)
	assert.Nil(t, got, "a run must never collide with itself or its own member cards")
}

func TestResolve_ClusterExcludesMemberCards(t *testing.T) {
	m1 := at(outbound(1, "Acme"), testDate, &truck1, SeqStep)
	m2 := at(outbound(2, "Acme"), testDate, &truck1, 2*SeqStep)
	payload := ClusterPayload([]*domain.Order{m1, m2})
	cell := domain.NewPlacement(testDate, &truck2)

	targets := []DropTarget{
		orderTarget(m1.Ref(), Rect{X: 0, Y: 0, W: 20, H: 2}),
		cellTarget(cell, Rect{X: 0, Y: 0, W: 20, H: 10}),
	}

	got := Resolve(payload, Point{X: 5, Y: 1}, Rect{X: 0, Y: 0, W: 10, H: 3}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetCell, got.Kind)
}

func TestResolve_SkipsEdgeZonesInCellFallback(t *testing.T) {
	cell := domain.NewPlacement(testDate, &truck1)
	targets := []DropTarget{
		edgeTarget(cell, EdgeTop, Rect{X: 0, Y: 0, W: 20, H: 1}),
		cellTarget(cell, Rect{X: 0, Y: 0, W: 20, H: 10}),
	}
	r := run("r1", testDate, truck2)

	got := Resolve(RunPayload(r, nil), Point{X: 5, Y: 0}, Rect{X: 0, Y: 0, W: 10, H: 2}, targets)
	require.NotNil(t, got)
	assert.Equal(t, TargetCell, got.Kind, "edge sub-zones are not main-fallback candidates")
}

func TestResolve_LastResortReturnsFirstIntersection(t *testing.T) {
	cell := domain.NewPlacement(testDate, &truck1)
	edge := edgeTarget(cell, EdgeBottom, Rect{X: 0, Y: 9, W: 20, H: 1})
	r := run("r1", testDate, truck2)

	got := Resolve(RunPayload(r, nil), Point{X: 5, Y: 9}, Rect{X: 0, Y: 9, W: 10, H: 1}, []DropTarget{edge})
	require.NotNil(t, got)
	assert.Equal(t, TargetCellEdge, got.Kind)
}

func TestResolve_NoIntersection(t *testing.T) {
	cell := domain.NewPlacement(testDate, &truck1)
	targets := []DropTarget{cellTarget(cell, Rect{X: 0, Y: 0, W: 5, H: 5})}

	got := Resolve(OrderPayload(outbound(1, "Acme")), Point{X: 50, Y: 50}, Rect{X: 49, Y: 49, W: 4, H: 2}, targets)
	assert.Nil(t, got)
}

func TestRect_ContainsAndIntersects(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 4, H: 2}

	assert.True(t, r.Contains(Point{X: 2, Y: 2}))
	assert.True(t, r.Contains(Point{X: 5, Y: 3}))
	assert.False(t, r.Contains(Point{X: 6, Y: 2}), "right edge is exclusive")
	assert.False(t, r.Contains(Point{X: 2, Y: 4}), "bottom edge is exclusive")

	assert.True(t, r.Intersects(Rect{X: 5, Y: 3, W: 3, H: 3}))
	assert.False(t, r.Intersects(Rect{X: 6, Y: 2, W: 3, H: 3}), "touching edges do not intersect")
	assert.False(t, r.Intersects(Rect{X: 3, Y: 3, W: 0, H: 2}), "degenerate rects never intersect")
}
