package board

// Resolve picks the single winning drop target for the current drag, or nil.
//
// Priority order, first match wins:
//  1. Targets in the exclusion set never match: the dragged order's own
//     card, the dragged run's own card, and every member card when dragging
//     a run or cluster.
//  2. Single order only: a pointer-containing unscheduling area wins
//     unconditionally. Exact pointer containment is required because the
//     area sits behind other draggable content and must not steal drops
//     meant for nearby cells.
//  3. Single order only: order-card and run-card hits by bounding-box
//     intersection, in registration order ("hover to merge").
//  4. The main cell target by bounding-box intersection, excluding edge
//     sub-zones.
//  5. The first bounding-box intersection of any kind, or nothing.
func Resolve(payload DragPayload, pointer Point, dragRect Rect, targets []DropTarget) *DropTarget {
	excluded := exclusionSet(payload)

	var hits []*DropTarget
	for i := range targets {
		t := &targets[i]
		if excluded[t.ID] {
			continue
		}
		if t.Rect.Intersects(dragRect) {
			hits = append(hits, t)
		}
	}

	if payload.Kind == PayloadOrder {
		for i := range targets {
			t := &targets[i]
			if t.Kind == TargetUnscheduleArea && !excluded[t.ID] && t.Rect.Contains(pointer) {
				return t
			}
		}
		for _, t := range hits {
			if t.Kind == TargetOrderCard || t.Kind == TargetRunCard {
				return t
			}
		}
	}

	for _, t := range hits {
		if t.Kind == TargetCell {
			return t
		}
	}

	if len(hits) > 0 {
		return hits[0]
	}
	return nil
}

// exclusionSet lists target ids the payload may never collide with: itself,
// and its own children when dragging a container.
func exclusionSet(payload DragPayload) map[string]bool {
	ex := make(map[string]bool, 1+len(payload.Members))
	switch payload.Kind {
	case PayloadOrder:
		if payload.Order != nil {
			ex[OrderTargetID(payload.Order.Ref())] = true
		}
	case PayloadRun:
		if payload.Run != nil {
			ex[RunTargetID(payload.Run.ID)] = true
		}
		for _, m := range payload.Members {
			ex[OrderTargetID(m.Ref())] = true
		}
	case PayloadCluster:
		for _, m := range payload.Members {
			ex[OrderTargetID(m.Ref())] = true
		}
	}
	return ex
}
