package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/store"
	"github.com/idilsaglam/wishlist/internal/ui"
)

const titleCharLimit = 200

// snapshotMsg carries a collection pushed by the store.
type snapshotMsg []model.Wish

// listItem adapts a Wish to bubbles/list.Item
type listItem struct {
	wish model.Wish
}

func (i listItem) Title() string       { return i.wish.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.wish.Title }

// Single-line delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	bullet := ui.AccentStyle.Render(ui.Current().Heart)
	fmt.Fprintln(w, prefix+bullet+" "+it.wish.Title)
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// Model is the interactive wishlist. It never owns wishes: every change goes
// through the store and comes back as a snapshot.
type Model struct {
	ctx     context.Context
	store   *store.WishStore
	updates <-chan []model.Wish

	list  list.Model
	count int

	adding bool
	ti     textinput.Model
	addErr string
	status string

	width, height int
}

// New builds the model and subscribes it to st. Call the returned cancel
// func once the program has exited.
func New(ctx context.Context, st *store.WishStore) (Model, func()) {
	updates := make(chan []model.Wish, 1)
	cancel := st.Subscribe(func(ws []model.Wish) {
		// latest wins: drop a stale snapshot the UI has not consumed yet
		for {
			select {
			case updates <- ws:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("wish", "wishes")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, deleteKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addKey, deleteKey} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a wish"
	ti.CharLimit = titleCharLimit

	m := Model{
		ctx:     ctx,
		store:   st,
		updates: updates,
		list:    l,
		ti:      ti,
		width:   80,
		height:  24,
	}
	m.setItems(st.List())
	m.resize()
	return m, cancel
}

// Run starts the program on the terminal's alternate screen.
func Run(ctx context.Context, st *store.WishStore) error {
	m, cancel := New(ctx, st)
	defer cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func waitForSnapshot(ch <-chan []model.Wish) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-ch)
	}
}

func (m Model) Init() tea.Cmd { return waitForSnapshot(m.updates) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case snapshotMsg:
		cmd := m.setItems(msg)
		return m, tea.Batch(cmd, waitForSnapshot(m.updates))
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				return m, tea.Quit
			}
		case "a":
			m.adding = true
			m.addErr = ""
			m.status = ""
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		case "d":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			_, err := m.store.Add(m.ctx, m.ti.Value())
			switch {
			case store.IsValidation(err):
				// keep the input open so the user can fix it
				m.addErr = "Title cannot be empty"
				return m, nil
			case err != nil:
				m.addErr = err.Error()
				return m, nil
			}
			m.closeInput()
			m.status = "added"
			return m, m.setItems(m.store.List())
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if err := m.store.Delete(m.ctx, it.wish.ID); err != nil {
		m.status = "delete failed: " + err.Error()
		return m, nil
	}
	m.status = "deleted"
	return m, m.setItems(m.store.List())
}

func (m *Model) closeInput() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) setItems(ws []model.Wish) tea.Cmd {
	items := make([]list.Item, 0, len(ws))
	for _, w := range ws {
		items = append(items, listItem{wish: w})
	}
	m.count = len(ws)
	m.list.Title = fmt.Sprintf("%s   %s",
		ui.TitleStyle.Render("Wishlist"),
		ui.AccentStyle.Render(model.CountLabel(m.count)),
	)
	return m.list.SetItems(items)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
}

// Wishes returns what the list currently shows, in order.
func (m Model) Wishes() []model.Wish {
	out := make([]model.Wish, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.wish)
		}
	}
	return out
}

func (m Model) View() string {
	var b strings.Builder
	if m.count == 0 {
		b.WriteString(m.emptyView())
	} else {
		b.WriteString(m.list.View())
	}
	if m.adding {
		title := "Create a new wish"
		if m.addErr != "" {
			title += " - " + ui.ErrorStyle.Render(m.addErr)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		b.WriteString("\n" + bar.Render(title+"\n"+m.ti.View()))
	} else if m.status != "" {
		b.WriteString("\n" + ui.SuccessStyle.Render(m.status))
	}
	return ui.FrameStyle.Render(b.String())
}

func (m Model) emptyView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		ui.TitleStyle.Render(ui.Current().Heart+" "+ui.EmptyTitle),
		ui.MutedStyle.Render(ui.EmptyMessage),
		"",
		ui.HelpStyle.Render("a add • q quit"),
	)
	return lipgloss.Place(m.width-4, m.height-6, lipgloss.Center, lipgloss.Center, body)
}
