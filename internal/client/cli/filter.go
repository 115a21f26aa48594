package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/shiftjournal/internal/api"
)

// filterDebounce is how long typing must pause before a search runs.
var filterDebounce = 300 * time.Millisecond

type searchFunc func(ctx context.Context, content, note string, page int) (*api.SearchEntriesResponse, error)

type debounceMsg struct{ seq int }

type resultsMsg struct {
	seq  int
	resp *api.SearchEntriesResponse
	err  error
}

// filterModel searches the whole journal by content and note. Every edit
// bumps seq; only the debounce tick and the results carrying the latest seq
// are applied, so a slow early query never overwrites a newer one.
type filterModel struct {
	ctx    context.Context
	search searchFunc

	inputs [2]textinput.Model
	focus  int

	seq     int
	page    int
	shown   int // page of entries
	loading bool
	entries []api.Entry
	hasMore bool
	hasPrev bool
	err     error
}

var (
	filterTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0055B3"))
	filterHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	filterError = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

func newFilterModel(ctx context.Context, search searchFunc) *filterModel {
	content := textinput.New()
	content.Prompt = "Содержание: "
	content.Placeholder = "any"
	content.Focus()

	note := textinput.New()
	note.Prompt = "Примечание: "
	note.Placeholder = "any"

	return &filterModel{ctx: ctx, search: search, inputs: [2]textinput.Model{content, note}}
}

func (m *filterModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.runSearch())
}

func (m *filterModel) runSearch() tea.Cmd {
	m.loading = true
	seq, page := m.seq, m.page
	content, note := m.inputs[0].Value(), m.inputs[1].Value()
	return func() tea.Msg {
		resp, err := m.search(m.ctx, content, note, page)
		return resultsMsg{seq: seq, resp: resp, err: err}
	}
}

func (m *filterModel) debounce() tea.Cmd {
	m.seq++
	m.page = 0
	seq := m.seq
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg { return debounceMsg{seq: seq} })
}

func (m *filterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.inputs[m.focus].Blur()
			m.focus = 1 - m.focus
			return m, m.inputs[m.focus].Focus()
		case "ctrl+n":
			if !m.hasMore || m.loading {
				return m, nil
			}
			m.seq++
			m.page++
			return m, m.runSearch()
		case "ctrl+p":
			if m.page == 0 || m.loading {
				return m, nil
			}
			m.seq++
			m.page--
			return m, m.runSearch()
		}

		before := m.inputs[m.focus].Value()
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if m.inputs[m.focus].Value() != before {
			return m, tea.Batch(cmd, m.debounce())
		}
		return m, cmd

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.runSearch()

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.page = m.shown
			return m, nil
		}
		if msg.resp != nil {
			m.entries = msg.resp.Entries
			m.hasMore = msg.resp.HasMore
			m.hasPrev = msg.resp.HasPrev
			m.page = msg.resp.Page
			m.shown = m.page
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *filterModel) View() string {
	var b strings.Builder
	b.WriteString(filterTitle.Render("Поиск по журналу") + "\n\n")
	b.WriteString(m.inputs[0].View() + "\n")
	b.WriteString(m.inputs[1].View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(filterError.Render("Error: "+describe(m.err)) + "\n")
	case m.loading && len(m.entries) == 0:
		b.WriteString("Searching...\n")
	case len(m.entries) == 0:
		b.WriteString("No entries\n")
	default:
		b.WriteString(entriesTable(m.entries, true) + "\n")
	}

	nav := fmt.Sprintf("page %d", m.page+1)
	if m.hasPrev {
		nav += " · ctrl+p previous"
	}
	if m.hasMore {
		nav += " · ctrl+n next"
	}
	b.WriteString("\n" + filterHint.Render(nav+" · tab switch field · esc close"))
	return b.String()
}

// Filter opens the search view.
func (a *App) Filter(ctx context.Context) error {
	_, err := runProgram(newFilterModel(ctx, a.journal.Search))
	return err
}
