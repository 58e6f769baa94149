package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

type queueSnapshotMsg struct {
	snap *contract.QueueSnapshot
	err  error
}

// queueRow is one (vendor, category) capacity row across the window days.
type queueRow struct {
	vendorID   int64
	vendorName string
	category   domain.BoxCategory
}

// queueView renders the production queue: a grid of capacity bars per
// (vendor, category) row and window day, with the selected bin's lines
// listed below. All edits are keyboard driven.
type queueView struct {
	state  *SharedState
	window contract.Window

	row  int
	day  int
	line int

	// override entry mode: "o" starts it, digits accumulate, enter commits.
	editingOverride bool
	overrideInput   string

	status string
	err    error
}

func newQueueView(state *SharedState) *queueView {
	return &queueView{
		state:  state,
		window: contract.WeekWindow(time.Now()),
	}
}

func (v *queueView) ID() ViewID { return ViewQueue }

func (v *queueView) Title() string {
	return fmt.Sprintf("queue %s", v.window.From.Format("01-02"))
}

func (v *queueView) ShortHelp() []key.Binding {
	if v.editingOverride {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "set override")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h/j/k/l", "navigate")),
		key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "reorder line")),
		key.NewBinding(key.WithKeys("H"), key.WithHelp("H/L", "move line across days")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "override")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear override")),
	}
}

func (v *queueView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *queueView) loadCmd() tea.Cmd {
	app := v.state.App
	win := v.window
	return func() tea.Msg {
		snap, err := app.Queue.Snapshot(context.Background(), win)
		return queueSnapshotMsg{snap: snap, err: err}
	}
}

func (v *queueView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case queueSnapshotMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.state.Engine.Store().HydrateQueue(*msg.snap)
		return v, nil

	case storeChangedMsg:
		return v, v.loadCmd()

	case refreshViewMsg:
		return v, v.loadCmd()

	case planDoneMsg:
		if msg.err != nil {
			v.status = "sync failed, refresh to reconcile"
		}
		return v, nil

	case tea.KeyMsg:
		if v.editingOverride {
			return v.handleOverrideKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *queueView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.rows()
	days := v.window.Days()

	switch msg.String() {
	case "[":
		v.window = v.window.Shift(-1)
		v.line = 0
		return v, v.loadCmd()
	case "]":
		v.window = v.window.Shift(1)
		v.line = 0
		return v, v.loadCmd()
	case "r":
		return v, v.loadCmd()

	case "h", "left":
		if v.day > 0 {
			v.day--
			v.line = 0
		}
	case "l", "right":
		if v.day < len(days)-1 {
			v.day++
			v.line = 0
		}
	case "k":
		if v.row > 0 {
			v.row--
			v.line = 0
		}
	case "j":
		if v.row < len(rows)-1 {
			v.row++
			v.line = 0
		}
	case "up":
		if v.line > 0 {
			v.line--
		}
	case "down":
		if b := v.selectedBin(); b != nil && v.line < len(b.Lines)-1 {
			v.line++
		}

	case "K":
		return v, v.reorderLine(-1)
	case "J":
		return v, v.reorderLine(1)
	case "H":
		return v, v.moveLineDay(-1)
	case "L":
		return v, v.moveLineDay(1)

	case "o":
		v.editingOverride = true
		v.overrideInput = ""
	case "c":
		if r := v.selectedRow(); r != nil {
			plan := v.state.Engine.Planner().PlanClearOverride(r.vendorID, r.category, days[v.day])
			return v, v.executeCmd(plan)
		}
	}
	return v, nil
}

func (v *queueView) handleOverrideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editingOverride = false
		return v, nil
	case tea.KeyEnter:
		v.editingOverride = false
		qty, err := strconv.Atoi(v.overrideInput)
		if err != nil || qty < 0 {
			v.status = "override must be a non-negative number"
			return v, nil
		}
		r := v.selectedRow()
		if r == nil {
			return v, nil
		}
		plan := v.state.Engine.Planner().PlanSetOverride(r.vendorID, r.category, v.window.Days()[v.day], qty)
		return v, v.executeCmd(plan)
	case tea.KeyBackspace:
		if len(v.overrideInput) > 0 {
			v.overrideInput = v.overrideInput[:len(v.overrideInput)-1]
		}
		return v, nil
	}
	s := msg.String()
	if len(s) == 1 && s >= "0" && s <= "9" {
		v.overrideInput += s
	}
	return v, nil
}

// reorderLine moves the selected line up or down within its bin.
func (v *queueView) reorderLine(delta int) tea.Cmd {
	b := v.selectedBin()
	if b == nil || v.line >= len(b.Lines) {
		return nil
	}
	idx := v.line + delta
	if idx < 0 || idx >= len(b.Lines) {
		return nil
	}
	line := b.Lines[v.line]
	plan := v.state.Engine.Planner().PlanQueueMove(line.ID, b.VendorID, b.Category, b.Date, idx)
	v.line = idx
	return v.executeCmd(plan)
}

// moveLineDay sends the selected line to the previous or next day, appended
// at the end of the destination bin.
func (v *queueView) moveLineDay(delta int) tea.Cmd {
	b := v.selectedBin()
	if b == nil || v.line >= len(b.Lines) {
		return nil
	}
	days := v.window.Days()
	di := v.day + delta
	if di < 0 || di >= len(days) {
		return nil
	}
	line := b.Lines[v.line]
	dest := v.state.Engine.Store().Bin(b.VendorID, b.Category, days[di])
	plan := v.state.Engine.Planner().PlanQueueMove(line.ID, b.VendorID, b.Category, days[di], len(dest.Lines))
	v.day = di
	v.line = len(dest.Lines)
	return v.executeCmd(plan)
}

func (v *queueView) executeCmd(plan board.Plan) tea.Cmd {
	plan = v.state.Engine.Dispatch(plan)
	if plan.Kind == board.PlanNoop || len(plan.Mutations) == 0 {
		return nil
	}
	engine := v.state.Engine
	v.status = ""
	return func() tea.Msg {
		return planDoneMsg{err: engine.ExecutePlan(context.Background(), plan)}
	}
}

// rows enumerates the (vendor, category) rows worth showing: any pairing
// with lines or a nonzero allotment somewhere in the window.
func (v *queueView) rows() []queueRow {
	store := v.state.Engine.Store()
	days := v.window.Days()
	cats := []domain.BoxCategory{domain.CategoryRSC, domain.CategoryDieCut, domain.CategorySheet}

	var out []queueRow
	for _, vendor := range store.Vendors() {
		for _, cat := range cats {
			show := false
			for _, d := range days {
				b := store.Bin(vendor.ID, cat, d)
				if b.Allotment > 0 || len(b.Lines) > 0 {
					show = true
					break
				}
			}
			if show {
				out = append(out, queueRow{vendorID: vendor.ID, vendorName: vendor.Name, category: cat})
			}
		}
	}
	return out
}

func (v *queueView) selectedRow() *queueRow {
	rows := v.rows()
	if v.row >= len(rows) {
		if len(rows) == 0 {
			return nil
		}
		v.row = len(rows) - 1
	}
	return &rows[v.row]
}

func (v *queueView) selectedBin() *board.CapacityBin {
	r := v.selectedRow()
	if r == nil {
		return nil
	}
	days := v.window.Days()
	if v.day >= len(days) {
		v.day = len(days) - 1
	}
	return v.state.Engine.Store().Bin(r.vendorID, r.category, days[v.day])
}

func (v *queueView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("queue load failed: %v", v.err))
	}
	store := v.state.Engine.Store()
	rows := v.rows()
	days := v.window.Days()

	labelW := laneLabelW + 10
	cellW := (v.state.Width - labelW) / len(days)
	if cellW < minCellW {
		cellW = minCellW
	}

	var b strings.Builder

	b.WriteString(formatter.Fit("", labelW))
	for _, d := range days {
		b.WriteString(formatter.Bold(formatter.Fit(d.Format("Mon 01-02"), cellW)))
	}
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(formatter.Dim("no vendors with capacity in this window"))
		return b.String()
	}

	for ri, r := range rows {
		label := fmt.Sprintf("%s/%s", r.vendorName, r.category)
		b.WriteString(formatter.Dim(formatter.Fit(label, labelW)))
		for di, d := range days {
			bin := store.Bin(r.vendorID, r.category, d)
			cell := formatter.CapacityBar(bin.Scheduled, bin.Allotment, cellW-1)
			if bin.IsOverride {
				cell += formatter.StylePurple.Render("*")
			} else {
				cell += " "
			}
			if ri == v.row && di == v.day {
				cell = hoverStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderDetail())
	return b.String()
}

// renderDetail lists the selected bin's lines in ordinal order.
func (v *queueView) renderDetail() string {
	bin := v.selectedBin()
	if bin == nil {
		return ""
	}
	var b strings.Builder

	allot := fmt.Sprintf("%d/%d", bin.Scheduled, bin.Allotment)
	if bin.IsOverride {
		allot += " (override)"
	}
	b.WriteString(formatter.StyleHeader.Render(bin.Date.Format("Mon 01-02")) + " " + formatter.Bold(allot) + "\n")

	if v.editingOverride {
		b.WriteString(formatter.StyleYellow.Render("override: "+v.overrideInput+"▏") + "\n")
	} else if v.status != "" {
		b.WriteString(formatter.StyleYellow.Render(v.status) + "\n")
	}

	if len(bin.Lines) == 0 {
		b.WriteString(formatter.Dim("no lines scheduled"))
		return b.String()
	}
	if v.line >= len(bin.Lines) {
		v.line = len(bin.Lines) - 1
	}
	for i, l := range bin.Lines {
		row := fmt.Sprintf("%2d. %-30s %5d", i+1, l.Description, l.Quantity)
		if i == v.line {
			row = hoverStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}
