package board

import (
	"testing"
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(s *Store, plan Plan) {
	for _, m := range plan.Mutations {
		s.Apply(m)
	}
}

func TestPlanDrop_UnscheduledOrderOntoEmptyCell(t *testing.T) {
	// Item A (outbound, unscheduled) dropped on (2024-06-03, Truck-2).
	a := outbound(1, "Acme")
	s := hydrated([]*domain.Order{a}, nil, nil)
	p := NewPlanner(s)

	cell := domain.NewPlacement(testDate, &truck2)
	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetCell, Placement: &cell})

	require.Equal(t, PlanReschedule, plan.Kind)
	applyAll(s, plan)

	got := s.Order(a.Ref())
	require.NotNil(t, got.Placement())
	assert.True(t, got.Placement().Equal(cell))
	assert.Nil(t, got.RunID)
	assert.Equal(t, SeqStep, got.Seq, "sole occupant gets the step value")
}

func TestPlanDrop_InboundOntoTruckRowRejected(t *testing.T) {
	a := inbound(1, "Globex")
	s := hydrated([]*domain.Order{a}, nil, nil)
	p := NewPlanner(s)

	cell := domain.NewPlacement(testDate, &truck1)
	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetCell, Placement: &cell})

	assert.Equal(t, PlanNoop, plan.Kind)
	assert.Empty(t, plan.Mutations)
	assert.Nil(t, s.Order(a.Ref()).Date, "placement stays null, no mutation")
}

func TestPlanDrop_InboundOntoDockLane(t *testing.T) {
	a := inbound(1, "Globex")
	s := hydrated([]*domain.Order{a}, nil, nil)
	p := NewPlanner(s)

	dock := domain.NewPlacement(testDate, nil)
	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetCell, Placement: &dock})

	require.Equal(t, PlanReschedule, plan.Kind)
	applyAll(s, plan)
	got := s.Order(a.Ref())
	require.NotNil(t, got.Placement())
	assert.Nil(t, got.TruckID, "inbound orders keep a nil truck assignment")
}

func TestPlanDrop_TwoUngroupedOrdersCreateRun(t *testing.T) {
	// A lands on B at B's placement (2024-06-04, Truck-1, no run).
	date := testDate.AddDate(0, 0, 1)
	a := outbound(1, "Acme")
	b := at(outbound(2, "Acme"), date, &truck1, 1000)
	s := hydrated([]*domain.Order{a, b}, nil, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetOrderCard, OrderRef: refPtr(b.Ref())})

	require.Equal(t, PlanRunCreate, plan.Kind)
	require.Len(t, plan.Mutations, 3, "create run, then attach both orders sequentially")
	assert.Equal(t, contract.OpCreateRun, plan.Mutations[0].Op)
	assert.Equal(t, contract.OpReschedule, plan.Mutations[1].Op)
	assert.Equal(t, contract.OpReschedule, plan.Mutations[2].Op)

	applyAll(s, plan)
	runID := plan.Mutations[0].CreateRun.ID
	members := s.Members(runID)
	require.Len(t, members, 2)

	want := domain.NewPlacement(date, &truck1)
	for _, m := range members {
		require.NotNil(t, m.Placement())
		assert.True(t, m.Placement().Equal(want), "both members inherit B's placement")
	}
}

func TestPlanDrop_SelfDropRejected(t *testing.T) {
	a := at(outbound(1, "Acme"), testDate, &truck1, 1000)
	s := hydrated([]*domain.Order{a}, nil, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetOrderCard, OrderRef: refPtr(a.Ref())})
	assert.Equal(t, PlanNoop, plan.Kind)
}

func TestPlanDrop_InboundNeverGroups(t *testing.T) {
	a := inbound(1, "Globex")
	b := at(outbound(2, "Acme"), testDate, &truck1, 1000)
	s := hydrated([]*domain.Order{a, b}, nil, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetOrderCard, OrderRef: refPtr(b.Ref())})
	assert.Equal(t, PlanNoop, plan.Kind, "grouping requires matching schedulable kinds")
}

func TestPlanDrop_OrderOntoRunCardMerges(t *testing.T) {
	r := run("r1", testDate, truck3)
	m := inRun(at(outbound(1, "Acme"), testDate, &truck3, 1000), "r1")
	loose := at(outbound(2, "Globex"), testDate, &truck1, 1000)
	s := hydrated([]*domain.Order{m, loose}, []*domain.Run{r}, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(OrderPayload(loose), &DropTarget{Kind: TargetRunCard, RunID: "r1"})

	require.Equal(t, PlanRunMerge, plan.Kind)
	applyAll(s, plan)

	members := s.Members("r1")
	require.Len(t, members, 2)
	assert.Equal(t, int64(1), members[0].ID, "existing member keeps the top slot")
	assert.Equal(t, int64(2), members[1].ID, "merged order appends at the bottom")
	want := r.Placement()
	assert.True(t, members[1].Placement().Equal(want), "merged order adopts the run's placement")
}

func TestPlanDrop_RunMoveCarriesMembers(t *testing.T) {
	// Run G {A, B} at (2024-06-05, Truck-3) moved to (2024-06-06, Truck-1).
	from := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	r := run("g1", from, truck3)
	a := inRun(at(outbound(1, "Acme"), from, &truck3, 1000), "g1")
	b := inRun(at(outbound(2, "Acme"), from, &truck3, 2000), "g1")
	s := hydrated([]*domain.Order{a, b}, []*domain.Run{r}, nil)
	p := NewPlanner(s)

	dest := domain.NewPlacement(to, &truck1)
	plan := p.PlanDrop(RunPayload(r, s.Members("g1")), &DropTarget{Kind: TargetCell, Placement: &dest})

	require.Equal(t, PlanRunMove, plan.Kind)
	require.NotNil(t, plan.Mutations[0].UpdateRun)
	assert.Equal(t, r.Name, plan.Mutations[0].UpdateRun.Name, "a move restates the run name")
	applyAll(s, plan)

	assert.True(t, s.Run("g1").Placement().Equal(dest))
	members := s.Members("g1")
	require.Len(t, members, 2)
	for _, m := range members {
		assert.True(t, m.Placement().Equal(dest), "member %s follows the run", m.Ref())
	}
	assert.Empty(t, s.OrdersAt(domain.NewPlacement(from, &truck3)))
}

func TestPlanDrop_RunMoveToSamePlacementIsNoop(t *testing.T) {
	r := run("g1", testDate, truck1)
	s := hydrated(nil, []*domain.Run{r}, nil)
	p := NewPlanner(s)

	dest := r.Placement()
	plan := p.PlanDrop(RunPayload(r, nil), &DropTarget{Kind: TargetCell, Placement: &dest})
	assert.Equal(t, PlanNoop, plan.Kind)
}

func TestPlanDrop_RunOntoRunMergesAndDissolvesSource(t *testing.T) {
	r1 := run("r1", testDate, truck1)
	r2 := run("r2", testDate, truck2)
	a := inRun(at(outbound(1, "Acme"), testDate, &truck1, 1000), "r1")
	b := inRun(at(outbound(2, "Globex"), testDate, &truck2, 1000), "r2")
	s := hydrated([]*domain.Order{a, b}, []*domain.Run{r1, r2}, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(RunPayload(r1, s.Members("r1")), &DropTarget{Kind: TargetRunCard, RunID: "r2"})

	require.Equal(t, PlanRunMerge, plan.Kind)
	applyAll(s, plan)

	assert.Nil(t, s.Run("r1"), "source run dissolves after the merge")
	members := s.Members("r2")
	require.Len(t, members, 2)
	for _, m := range members {
		assert.True(t, m.Placement().Equal(r2.Placement()))
	}
}

func TestPlanDrop_UnscheduleClearsPlacementAndRun(t *testing.T) {
	a := inRun(at(outbound(1, "Acme"), testDate, &truck1, 1000), "r1")
	s := hydrated([]*domain.Order{a}, []*domain.Run{run("r1", testDate, truck1)}, nil)
	p := NewPlanner(s)

	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetUnscheduleArea})

	require.Equal(t, PlanUnschedule, plan.Kind)
	applyAll(s, plan)
	got := s.Order(a.Ref())
	assert.Nil(t, got.Date)
	assert.Nil(t, got.TruckID)
	assert.Nil(t, got.RunID)
}

func TestPlanDrop_EdgeTopInsertsFirst(t *testing.T) {
	occ := at(outbound(1, "A"), testDate, &truck1, 1000)
	moved := outbound(2, "B")
	s := hydrated([]*domain.Order{occ, moved}, nil, nil)
	p := NewPlanner(s)

	cell := domain.NewPlacement(testDate, &truck1)
	plan := p.PlanDrop(OrderPayload(moved), &DropTarget{Kind: TargetCellEdge, Placement: &cell, Edge: EdgeTop})

	require.Equal(t, PlanReschedule, plan.Kind)
	applyAll(s, plan)

	slot := s.OrdersAt(cell)
	require.Len(t, slot, 2)
	assert.Equal(t, int64(2), slot[0].ID)
	assert.Equal(t, int64(1), slot[1].ID)
}

func TestPlanDrop_ClusterMove(t *testing.T) {
	a := at(outbound(1, "Acme"), testDate, &truck1, 1000)
	b := at(outbound(2, "Acme"), testDate, &truck2, 1000)
	s := hydrated([]*domain.Order{a, b}, nil, nil)
	p := NewPlanner(s)

	dest := domain.NewPlacement(testDate.AddDate(0, 0, 2), &truck3)
	plan := p.PlanDrop(ClusterPayload(s.Cluster("Acme")), &DropTarget{Kind: TargetCell, Placement: &dest})

	require.Equal(t, PlanClusterMove, plan.Kind)
	applyAll(s, plan)

	slot := s.OrdersAt(dest)
	require.Len(t, slot, 2)
	for i, o := range slot {
		assert.Equal(t, (i+1)*SeqStep, o.Seq)
		assert.Nil(t, o.RunID)
	}
}

func TestPlanDrop_ClusterWithInboundRejectedOnTruckRow(t *testing.T) {
	a := at(outbound(1, "Acme"), testDate, &truck1, 1000)
	b := inbound(2, "Acme")
	s := hydrated([]*domain.Order{a, b}, nil, nil)
	p := NewPlanner(s)

	dest := domain.NewPlacement(testDate, &truck3)
	plan := p.PlanDrop(ClusterPayload(s.Cluster("Acme")), &DropTarget{Kind: TargetCell, Placement: &dest})
	assert.Equal(t, PlanNoop, plan.Kind)
}

func TestPlanDrop_NoteRelocation(t *testing.T) {
	cell := domain.NewPlacement(testDate, &truck1)
	n := &domain.Note{ID: "n1", Content: "fragile load", Color: domain.NotePink, Target: domain.CellTarget(cell)}
	s := hydrated(nil, []*domain.Run{run("r1", testDate, truck2)}, []*domain.Note{n})
	p := NewPlanner(s)

	plan := p.PlanDrop(NotePayload(n), &DropTarget{Kind: TargetRunCard, RunID: "r1"})

	require.Equal(t, PlanAnnotate, plan.Kind)
	applyAll(s, plan)
	require.Len(t, s.NotesFor(domain.RunTarget("r1")), 1)
	assert.Empty(t, s.NotesFor(domain.CellTarget(cell)))
}

func TestPlanDrop_TemplateRunInstantiates(t *testing.T) {
	s := hydrated(nil, nil, nil)
	p := NewPlanner(s)

	cell := domain.NewPlacement(testDate, &truck1)
	plan := p.PlanDrop(TemplatePayload(TemplateRun), &DropTarget{Kind: TargetCell, Placement: &cell})

	require.Equal(t, PlanInstantiate, plan.Kind)
	applyAll(s, plan)
	created := s.RunAt(cell)
	require.NotNil(t, created)
	assert.Empty(t, s.Members(created.ID))
}

func TestPlanDrop_TemplateRunOnDockLaneRejected(t *testing.T) {
	s := hydrated(nil, nil, nil)
	p := NewPlanner(s)

	dock := domain.NewPlacement(testDate, nil)
	plan := p.PlanDrop(TemplatePayload(TemplateRun), &DropTarget{Kind: TargetCell, Placement: &dock})
	assert.Equal(t, PlanNoop, plan.Kind, "runs live on truck rows only")
}

func TestPlanDissolve(t *testing.T) {
	r := run("r1", testDate, truck1)
	a := inRun(at(outbound(1, "Acme"), testDate, &truck1, 1000), "r1")
	s := hydrated([]*domain.Order{a}, []*domain.Run{r}, nil)
	p := NewPlanner(s)

	plan := p.PlanDissolve("r1")
	require.Equal(t, PlanRunDissolve, plan.Kind)
	applyAll(s, plan)

	assert.Nil(t, s.Run("r1"))
	got := s.Order(a.Ref())
	assert.Nil(t, got.RunID)
	require.NotNil(t, got.Placement(), "dissolve never moves members")
}

func TestPlanRenameRun(t *testing.T) {
	r := run("r1", testDate, truck1)
	a := inRun(at(outbound(1, "Acme"), testDate, &truck1, 1000), "r1")
	s := hydrated([]*domain.Order{a}, []*domain.Run{r}, nil)
	p := NewPlanner(s)

	plan := p.PlanRenameRun("r1", "north loop")
	require.Equal(t, PlanRunRename, plan.Kind)
	applyAll(s, plan)

	got := s.Run("r1")
	assert.Equal(t, "north loop", got.Name)
	assert.Equal(t, testDate, got.Date)

	assert.Equal(t, PlanNoop, p.PlanRenameRun("r1", "north loop").Kind, "same name is a no-op")
	assert.Equal(t, PlanNoop, p.PlanRenameRun("r1", "").Kind)
	assert.Equal(t, PlanNoop, p.PlanRenameRun("missing", "x").Kind)
}

func TestPlanDrop_StaleDraggedOrderIsNoop(t *testing.T) {
	a := outbound(1, "Acme")
	s := hydrated(nil, nil, nil) // a was removed by a refresh mid-drag
	p := NewPlanner(s)

	cell := domain.NewPlacement(testDate, &truck1)
	plan := p.PlanDrop(OrderPayload(a), &DropTarget{Kind: TargetCell, Placement: &cell})
	assert.Equal(t, PlanNoop, plan.Kind)
}

func refPtr(r domain.Ref) *domain.Ref { return &r }
