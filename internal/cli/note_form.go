package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/domain"
)

// haulboardHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func haulboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// noteFormView is the sticky-note composer: a huh form over an existing note,
// pushed above the board after a palette note drop or to edit in place.
type noteFormView struct {
	state   *SharedState
	noteID  string
	form    *huh.Form
	content string
	color   string
	remove  bool
}

func newNoteFormView(state *SharedState, noteID string) *noteFormView {
	v := &noteFormView{state: state, noteID: noteID, color: string(domain.NoteYellow)}
	if n := state.Engine.Store().Note(noteID); n != nil {
		v.content = n.Content
		if n.Color != "" {
			v.color = string(n.Color)
		}
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Note").
				Placeholder("reminder for the dispatcher").
				Value(&v.content),
			huh.NewSelect[string]().
				Title("Color").
				Options(
					huh.NewOption("yellow", string(domain.NoteYellow)),
					huh.NewOption("pink", string(domain.NotePink)),
					huh.NewOption("blue", string(domain.NoteBlue)),
					huh.NewOption("green", string(domain.NoteGreen)),
				).
				Value(&v.color),
			huh.NewConfirm().
				Title("Delete this note?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.remove),
		),
	).WithTheme(haulboardHuhTheme()).WithShowHelp(false)
	return v
}

func (v *noteFormView) ID() ViewID    { return ViewNoteForm }
func (v *noteFormView) Title() string { return "note" }

func (v *noteFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *noteFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *noteFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

// submitCmd plans the edit (or delete), applies it optimistically, and runs
// it against the remote off the update loop.
func (v *noteFormView) submitCmd() tea.Cmd {
	engine := v.state.Engine
	var plan board.Plan
	if v.remove {
		plan = engine.Planner().PlanDeleteNote(v.noteID)
	} else {
		plan = engine.Planner().PlanEditNote(v.noteID, v.content, domain.NoteColor(v.color))
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

func (v *noteFormView) View() string {
	return v.form.View()
}
