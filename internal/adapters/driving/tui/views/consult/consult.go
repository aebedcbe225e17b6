// Package consult provides the question and answer view for the TUI.
package consult

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/components/answer"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
)

// View is the consult view: question input, answer panel and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	panel     *answer.Panel
	spinner   spinner.Model
	statusbar *status.Bar

	controller driving.QueryController
	actions    driving.HistoryActionService
	ctx        context.Context

	title      string
	outcome    *domain.QueryOutcome
	err        error
	submitting bool
	focusInput bool // true = typing a question, false = reading the answer

	width  int
	height int
	ready  bool
}

// NewView creates a new consult view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	controller driving.QueryController,
	actions driving.HistoryActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		panel:      answer.NewPanel(s),
		spinner:    sp,
		statusbar:  status.NewBar(s, km),
		controller: controller,
		actions:    actions,
		ctx:        context.Background(),
		title:      "IA-JUR",
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithTitle sets the header title.
func (v *View) WithTitle(title string) *View {
	if title != "" {
		v.title = title
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the consult view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConsultCompleted:
		v.handleConsultCompleted(msg)
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// The submit button stays disabled while a consult is in flight.
	if v.submitting {
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.submit(v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.NewConsult):
		v.newConsult()
		return v, v.input.Focus()
	case keymap.Matches(key, v.keymap.Retry) && v.err != nil:
		return v, v.retry()
	case keymap.Matches(key, v.keymap.Copy):
		return v, v.copyAnswer()
	case keymap.Matches(key, v.keymap.Download):
		return v, v.download()
	}
	return v, nil
}

// submit validates the question and starts a consult.
func (v *View) submit(question string) tea.Cmd {
	if strings.TrimSpace(question) == "" {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("Digite uma pergunta")
		return nil
	}
	if v.controller == nil {
		v.err = ErrNoController
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(ErrNoController.Error())
		return nil
	}

	v.startSubmitting()
	ctx, controller := v.ctx, v.controller
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		outcome, err := controller.Submit(ctx, question)
		return messages.ConsultCompleted{Outcome: outcome, Err: err}
	})
}

// retry resubmits the last question.
func (v *View) retry() tea.Cmd {
	if v.controller == nil {
		return nil
	}
	v.startSubmitting()
	ctx, controller := v.ctx, v.controller
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		outcome, err := controller.Retry(ctx)
		return messages.ConsultCompleted{Outcome: outcome, Err: err}
	})
}

// Repeat resubmits a history entry and shows its answer here.
func (v *View) Repeat(id string) tea.Cmd {
	if v.actions == nil {
		v.statusbar.SetMessage(ErrNoActions.Error())
		return nil
	}
	v.startSubmitting()
	ctx, actions := v.ctx, v.actions
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		outcome, err := actions.Repeat(ctx, id)
		return messages.ConsultCompleted{Outcome: outcome, Err: err}
	})
}

func (v *View) startSubmitting() {
	v.submitting = true
	v.err = nil
	v.outcome = nil
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateSubmitting)
	v.statusbar.SetMessage("")
}

func (v *View) copyAnswer() tea.Cmd {
	if v.outcome == nil {
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetMessage(ErrNoActions.Error())
		return nil
	}
	ctx, actions, outcome := v.ctx, v.actions, v.outcome
	return func() tea.Msg {
		if err := actions.CopyAnswer(ctx, outcome); err != nil {
			return messages.ActionCompleted{Err: err}
		}
		return messages.ActionCompleted{Message: "Resposta copiada"}
	}
}

func (v *View) download() tea.Cmd {
	if v.outcome == nil {
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetMessage(ErrNoActions.Error())
		return nil
	}
	actions, outcome := v.actions, v.outcome
	return func() tea.Msg {
		t, err := actions.CurrentTranscript(outcome)
		if err != nil {
			return messages.ActionCompleted{Err: err}
		}
		path, err := actions.SaveTranscript(t)
		if err != nil {
			return messages.ActionCompleted{Err: err}
		}
		return messages.ActionCompleted{Message: "Salvo em " + path}
	}
}

// handleConsultCompleted shows the answer or the failure.
func (v *View) handleConsultCompleted(msg messages.ConsultCompleted) {
	v.submitting = false

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrEmptyInput) {
			v.focusInput = true
			v.input.Focus()
		}
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.outcome = msg.Outcome
	if msg.Outcome != nil {
		v.input.SetValue(msg.Outcome.Query.Question)
	}
	v.statusbar.SetState(status.StateAnswer)
	v.statusbar.SetMessage("")
}

// newConsult clears the answer and error, keeping history untouched.
func (v *View) newConsult() {
	if v.controller != nil {
		v.controller.NewConsult()
	}
	v.outcome = nil
	v.err = nil
	v.focusInput = true
	v.input.Reset()
	v.statusbar.Clear()
}

// View renders the consult view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render(v.title+" - Consulta Jurídica"), "")
	sections = append(sections, v.input.View(), "")

	switch {
	case v.submitting:
		sections = append(sections, v.spinner.View()+" Consultando base jurídica...")
	case v.err != nil:
		sections = append(sections,
			v.styles.Error.Render("Erro na consulta: "+v.err.Error()),
			v.styles.Muted.Render("Verifique a conexão com o servidor e tente novamente."))
	case v.outcome != nil:
		sections = append(sections, v.panel.View(v.outcome))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.panel.SetWidth(width - 2)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the current input value.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the input value.
func (v *View) SetQuestion(q string) {
	v.input.SetValue(q)
}

// Outcome returns the answer on screen, if any.
func (v *View) Outcome() *domain.QueryOutcome {
	return v.outcome
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Submitting reports whether a consult is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Reset returns the view to input mode, keeping any answer on screen.
func (v *View) Reset() {
	if v.outcome == nil && !v.submitting {
		v.focusInput = true
		v.input.Focus()
	}
}
