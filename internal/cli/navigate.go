package cli

// Navigation messages passed between views and the root model.

// pushViewMsg pushes a view onto the stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the top view off the stack.
type popViewMsg struct{}

// replaceViewMsg swaps the top of the stack for another view.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg is broadcast to every view on the stack after a mutation so
// underlying views re-snapshot.
type refreshViewMsg struct{}
