package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/haulboard/internal/board"
)

// runFormView manages a run in place, opened by right-clicking its header:
// rename it, or dissolve it back into loose orders.
type runFormView struct {
	state    *SharedState
	runID    string
	form     *huh.Form
	name     string
	dissolve bool
}

func newRunFormView(state *SharedState, runID string) *runFormView {
	v := &runFormView{state: state, runID: runID}
	if r := state.Engine.Store().Run(runID); r != nil {
		v.name = r.Name
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Run name").
				Value(&v.name),
			huh.NewConfirm().
				Title("Dissolve this run?").
				Description("Members stay scheduled where they are.").
				Affirmative("Dissolve").
				Negative("Keep").
				Value(&v.dissolve),
		),
	).WithTheme(haulboardHuhTheme()).WithShowHelp(false)
	return v
}

func (v *runFormView) ID() ViewID    { return ViewRunForm }
func (v *runFormView) Title() string { return "run" }

func (v *runFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *runFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *runFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return popViewMsg{} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(v.submitCmd(), func() tea.Msg { return popViewMsg{} })
	}
	return v, cmd
}

func (v *runFormView) submitCmd() tea.Cmd {
	engine := v.state.Engine
	var plan board.Plan
	if v.dissolve {
		plan = engine.Planner().PlanDissolve(v.runID)
	} else {
		plan = engine.Planner().PlanRenameRun(v.runID, v.name)
	}
	plan = engine.Dispatch(plan)
	if plan.Kind == board.PlanNoop {
		return nil
	}
	return func() tea.Msg {
		if err := engine.ExecutePlan(context.Background(), plan); err != nil {
			return planDoneMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *runFormView) View() string {
	return v.form.View()
}
