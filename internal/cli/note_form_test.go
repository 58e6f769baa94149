package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// seedNote creates a cell note through the engine so both the optimistic
// store and the DB have it.
func seedNote(t *testing.T, app *App, cell domain.Placement) string {
	t.Helper()
	state := app.state()
	plan := state.Engine.Planner().PlanNewNote(domain.CellTarget(cell), "check dock door", domain.NoteYellow)
	state.Engine.Dispatch(plan)
	require.NoError(t, state.Engine.ExecutePlan(context.Background(), plan))
	return plan.Mutations[0].CreateNote.ID
}

func TestNoteForm_PrefillsExistingNote(t *testing.T) {
	app := testApp(t)
	truck, _, _ := seedBoard(t, app)
	cell := domain.NewPlacement(thisMonday(), &truck.ID)
	noteID := seedNote(t, app, cell)

	v := newNoteFormView(app.state(), noteID)
	assert.Equal(t, "check dock door", v.content)
	assert.Equal(t, string(domain.NoteYellow), v.color)
}

func TestNoteForm_SubmitEditsNote(t *testing.T) {
	app := testApp(t)
	truck, _, _ := seedBoard(t, app)
	cell := domain.NewPlacement(thisMonday(), &truck.ID)
	noteID := seedNote(t, app, cell)

	v := newNoteFormView(app.state(), noteID)
	v.content = "forklift out of service"
	v.color = string(domain.NotePink)

	cmd := v.submitCmd()
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, refreshViewMsg{}, msg)

	n := app.state().Engine.Store().Note(noteID)
	require.NotNil(t, n)
	assert.Equal(t, "forklift out of service", n.Content)
	assert.Equal(t, domain.NotePink, n.Color)

	snap := reload(t, app)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "forklift out of service", snap.Notes[0].Content)
	assert.Equal(t, domain.NotePink, snap.Notes[0].Color)
}

func TestNoteForm_DeleteRemovesNote(t *testing.T) {
	app := testApp(t)
	truck, _, _ := seedBoard(t, app)
	cell := domain.NewPlacement(thisMonday(), &truck.ID)
	noteID := seedNote(t, app, cell)

	v := newNoteFormView(app.state(), noteID)
	v.remove = true

	cmd := v.submitCmd()
	require.NotNil(t, cmd)
	cmd()

	assert.Nil(t, app.state().Engine.Store().Note(noteID))
	assert.Empty(t, reload(t, app).Notes)
}
