// Package history provides the history list view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

// ActionOption represents a history entry action.
type ActionOption int

const (
	ActionShow ActionOption = iota
	ActionRepeat
	ActionCopyQuestion
	ActionDownload
	ActionRemove
	ActionCancel
)

// Label returns the menu label of the action.
func (a ActionOption) Label() string {
	switch a {
	case ActionShow:
		return "Ver resposta"
	case ActionRepeat:
		return "Repetir consulta"
	case ActionCopyQuestion:
		return "Copiar pergunta"
	case ActionDownload:
		return "Baixar"
	case ActionRemove:
		return "Remover"
	case ActionCancel:
		return "Cancelar"
	default:
		return "?"
	}
}

// ActionsFor returns the actions offered for an entry. Persisted artifacts
// cannot be repeated or copied.
func ActionsFor(q *domain.Query) []ActionOption {
	if q.IsArtifact() {
		return []ActionOption{ActionDownload, ActionRemove, ActionCancel}
	}
	return []ActionOption{ActionShow, ActionRepeat, ActionCopyQuestion, ActionDownload, ActionRemove, ActionCancel}
}

// View is the history list view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.HistoryList
	statusbar *status.Bar

	history driving.HistoryService
	actions driving.HistoryActionService
	ctx     context.Context

	err          error
	menu         []ActionOption
	menuSelected int
	confirmClear bool
	detail       *domain.Query

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	history driving.HistoryService,
	actions driving.HistoryActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateHistory)

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewHistoryList(s),
		statusbar: bar,
		history:   history,
		actions:   actions,
		ctx:       context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current log.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	svc := v.history
	return func() tea.Msg {
		if svc == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("history: %w", domain.ErrServiceUnavailable)}
		}
		return messages.HistoryLoaded{Entries: svc.List()}
	}
}

func (v *View) sync() tea.Cmd {
	svc, ctx := v.history, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("history: %w", domain.ErrServiceUnavailable)}
		}
		err := svc.Sync(ctx)
		return messages.HistoryLoaded{Entries: svc.List(), Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.confirmClear:
			return v.handleConfirmKey(msg)
		case v.menu != nil:
			return v.handleMenuKey(msg)
		case v.detail != nil:
			if msg.Type == tea.KeyEsc {
				v.detail = nil
			}
			return v, nil
		}
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.err = msg.Err
		if msg.Err == nil || msg.Entries != nil {
			v.list.SetEntries(msg.Entries)
		}
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return v, nil

	case messages.HistoryCleared:
		v.statusbar.SetMessage("Histórico limpo")
		return v, v.load()

	case messages.HistoryEntryRemoved:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetMessage("Consulta removida")
		return v, v.load()

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Actions):
		if q := v.list.SelectedEntry(); q != nil {
			v.menu = ActionsFor(q)
			v.menuSelected = 0
		}
	case keymap.Matches(key, v.keymap.Sync):
		v.statusbar.SetMessage("Sincronizando...")
		return v, v.sync()
	case keymap.Matches(key, v.keymap.Clear):
		if !v.list.IsEmpty() {
			v.confirmClear = true
		}
	}
	return v, nil
}

// handleConfirmKey gates clearing behind an explicit yes.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirmClear = false
	switch msg.String() {
	case "y", "s":
		svc, ctx := v.history, v.ctx
		return v, func() tea.Msg {
			if svc != nil {
				svc.Clear(ctx)
			}
			return messages.HistoryCleared{}
		}
	}
	return v, nil
}

// handleMenuKey handles key presses in action menu mode.
func (v *View) handleMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > 0 {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < len(v.menu)-1 {
			v.menuSelected++
		}
	case "enter":
		action := v.menu[v.menuSelected]
		v.menu = nil
		return v, v.execute(action)
	case "esc":
		v.menu = nil
	}
	return v, nil
}

// execute performs an action on the selected entry.
func (v *View) execute(action ActionOption) tea.Cmd {
	q := v.list.SelectedEntry()
	if q == nil {
		return nil
	}
	entry := *q
	ctx, actions, svc := v.ctx, v.actions, v.history

	switch action {
	case ActionShow:
		v.detail = &entry
		return nil

	case ActionRepeat:
		return func() tea.Msg {
			return messages.RepeatRequested{ID: entry.ID}
		}

	case ActionCopyQuestion:
		if actions == nil {
			return nil
		}
		return func() tea.Msg {
			if err := actions.CopyQuestion(ctx, entry.ID); err != nil {
				return messages.ActionCompleted{Err: err}
			}
			return messages.ActionCompleted{Message: "Pergunta copiada"}
		}

	case ActionDownload:
		if actions == nil {
			return nil
		}
		v.statusbar.SetMessage("Baixando...")
		return func() tea.Msg {
			t, err := actions.Transcript(ctx, entry.ID)
			if err != nil {
				return messages.ActionCompleted{Err: err}
			}
			path, err := actions.SaveTranscript(t)
			if err != nil {
				return messages.ActionCompleted{Err: err}
			}
			return messages.ActionCompleted{Message: "Salvo em " + path}
		}

	case ActionRemove:
		if svc == nil {
			return nil
		}
		return func() tea.Msg {
			return messages.HistoryEntryRemoved{ID: entry.ID, Err: svc.Remove(ctx, entry.ID)}
		}

	case ActionCancel:
	}
	return nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Histórico de Consultas"), ""}

	switch {
	case v.detail != nil:
		sections = append(sections, v.renderDetail(v.detail))
	default:
		sections = append(sections, v.list.View())
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	if v.menu != nil {
		sections = append(sections, "", v.renderMenu())
	}

	if v.confirmClear {
		sections = append(sections, "",
			v.styles.Warning.Render("Tem certeza que deseja limpar todo o histórico? [y/N]"))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderDetail(q *domain.Query) string {
	body := q.Body
	if body == "" {
		body = render.Flatten(q.Answer, q.Question)
	}
	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))
	return strings.Join([]string{
		v.styles.Subtitle.Render(q.Question),
		v.styles.Muted.Render(render.EntryDetails(q)),
		"",
		wrap.Render(body),
		"",
		v.styles.Help.Render("[esc] voltar"),
	}, "\n")
}

func (v *View) renderMenu() string {
	lines := make([]string, 0, len(v.menu))
	for i, a := range v.menu {
		if i == v.menuSelected {
			lines = append(lines, v.styles.Selected.Render("> "+a.Label()))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+a.Label()))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Reset closes any open menu or prompt.
func (v *View) Reset() {
	v.menu = nil
	v.detail = nil
	v.confirmClear = false
	v.err = nil
	v.statusbar.SetMessage("")
}

// Entries returns the listed entries.
func (v *View) Entries() []domain.Query {
	return v.list.Entries()
}

// Selected returns the selected entry, or nil.
func (v *View) Selected() *domain.Query {
	return v.list.SelectedEntry()
}

// Menu returns the open action menu, or nil.
func (v *View) Menu() []ActionOption {
	return v.menu
}

// ConfirmingClear reports whether the clear prompt is open.
func (v *View) ConfirmingClear() bool {
	return v.confirmClear
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
