package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/haulboard/internal/testutil"
)

func TestTUI_BoardLoadsOnStartup(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	d := NewTestDriver(t, app)

	assert.Equal(t, ViewBoard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	view := d.View()
	assert.Contains(t, view, "haulboard")
	assert.Contains(t, view, "Box Truck 1")
	assert.Contains(t, view, "Acme")
	assert.Contains(t, view, "Baxter")
	assert.Contains(t, view, "UNSCHEDULED")
}

func TestTUI_QuitWithQ(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_ChangeSignalRefreshesAfterToggles(t *testing.T) {
	app := testApp(t)
	truck, _, _ := seedBoard(t, app)
	seedQueue(t, app)
	d := NewTestDriver(t, app)

	// The root model owns the change waiter, so swapping views does not
	// re-arm it; the signal still reaches whichever view is active.
	d.PressTab()
	d.PressTab()

	late := testutil.NewTestOrder("Walker",
		testutil.WithPlacement(thisMonday(), &truck.ID))
	require.NoError(t, app.Board.CreateOrder(context.Background(), late))

	d.Send(storeChangedMsg{})
	assert.Contains(t, d.View(), "Walker")
}

func TestTUI_TabTogglesBoardAndQueue(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	seedQueue(t, app)

	d := NewTestDriver(t, app)
	assert.Equal(t, ViewBoard, d.ActiveViewID())

	d.PressTab()
	assert.Equal(t, ViewQueue, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, d.View(), "Great Lakes")

	d.PressTab()
	assert.Equal(t, ViewBoard, d.ActiveViewID())
}
