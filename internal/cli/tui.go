package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/interact"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// autosaveTickMsg fires when the next autosave is due.
type autosaveTickMsg time.Time

// =============================================================================
// boardBrowser - Interactive document browsing
// =============================================================================

// boardBrowser is the bubbletea model for browsing and editing a document.
// It lists the free cards of the current board; board cards can be entered,
// turning the list into a drill-down over the board tree.
type boardBrowser struct {
	engine   *interact.Engine
	name     string
	autosave cache.Cache
	interval time.Duration
	ttl      time.Duration

	cursor int
	offset int
	height int

	adding bool
	input  string
	status string
}

// newBoardBrowser creates a browser over the engine's document. A zero
// interval disables autosave.
func newBoardBrowser(engine *interact.Engine, name string, autosave cache.Cache, interval, ttl time.Duration) boardBrowser {
	return boardBrowser{
		engine:   engine,
		name:     name,
		autosave: autosave,
		interval: interval,
		ttl:      ttl,
		height:   15,
	}
}

func (m boardBrowser) Init() tea.Cmd {
	return m.autosaveTick()
}

func (m boardBrowser) autosaveTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return autosaveTickMsg(t)
	})
}

func (m boardBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}

	case autosaveTickMsg:
		doc := m.engine.Store().Document()
		if err := cache.SaveDocument(context.Background(), m.autosave, m.name, doc, m.ttl); err != nil {
			m.status = "autosave failed"
		} else {
			m.status = "autosaved " + time.Time(msg).Format("15:04:05")
		}
		return m, m.autosaveTick()
	}
	return m, nil
}

// updateAdding handles keys while typing a new note's content.
func (m boardBrowser) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input = ""
	case tea.KeyEnter:
		if m.input != "" {
			n := len(m.cards())
			x := 40 + float64(n%4)*240
			y := 40 + float64(n/4)*160
			m.engine.CreateCard(board.TypeNote, x, y, board.WithContent(m.input))
			m.status = "added note"
		}
		m.adding = false
		m.input = ""
	case tea.KeyBackspace:
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeySpace:
		m.input += " "
	}
	return m, nil
}

// updateBrowsing handles keys in list mode.
func (m boardBrowser) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.cards()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(cards)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		if m.cursor < len(cards) {
			c := cards[m.cursor]
			if c.Type == board.TypeBoard && m.engine.Navigate(c.LinkedBoardID) {
				m.cursor, m.offset = 0, 0
				m.status = "entered " + c.Name
			}
		}
	case "esc", "left", "h":
		s := m.engine.Store()
		path := s.PathTo(s.Document().CurrentBoardID)
		if len(path) > 1 {
			m.engine.Navigate(path[len(path)-2].ID)
			m.cursor, m.offset = 0, 0
			m.status = "back to " + path[len(path)-2].Name
		}
	case "n":
		m.adding = true
		m.input = ""
	case "d":
		if m.cursor < len(cards) {
			c := cards[m.cursor]
			m.engine.SelectOnly(c.ID)
			m.engine.DeleteSelection()
			m.status = "deleted " + string(c.Type)
			if m.cursor >= len(cards)-1 && m.cursor > 0 {
				m.cursor--
			}
		}
	case "u":
		if m.engine.Undo() {
			m.status = "undo"
		} else {
			m.status = "nothing to undo"
		}
		m.clampCursor()
	case "r":
		if m.engine.Redo() {
			m.status = "redo"
		} else {
			m.status = "nothing to redo"
		}
		m.clampCursor()
	case "g":
		m.engine.SetGridSnap(!m.engine.GridSnap())
		if m.engine.GridSnap() {
			m.status = "grid snap on"
		} else {
			m.status = "grid snap off"
		}
	}
	return m, nil
}

func (m *boardBrowser) clampCursor() {
	if n := len(m.cards()); m.cursor >= n {
		m.cursor = 0
		m.offset = 0
	}
}

// cards returns the current board's free cards in a stable creation order,
// so the cursor does not jump when z-indices change.
func (m boardBrowser) cards() []*board.Card {
	s := m.engine.Store()
	cs := s.FreeCards(s.Document().CurrentBoardID)
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].ID < cs[j].ID
	})
	return cs
}

func (m boardBrowser) View() string {
	var b strings.Builder

	s := m.engine.Store()
	crumbs := make([]string, 0, 4)
	for _, bd := range s.PathTo(s.Document().CurrentBoardID) {
		crumbs = append(crumbs, bd.Name)
	}

	b.WriteString(StyleTitle.Render(m.name) + StyleDim.Render("  "+strings.Join(crumbs, " / ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ enter board  esc back  n note  d delete  u/r undo/redo  g grid  q quit"))
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(StyleHighlight.Render("New note: ") + m.input + StyleDim.Render("▌"))
		b.WriteString("\n")
		return b.String()
	}

	cards := m.cards()
	if len(cards) == 0 {
		b.WriteString(listDimStyle.Render("  (empty board, press n to add a note)"))
		b.WriteString("\n")
	} else {
		end := m.offset + m.height
		if end > len(cards) {
			end = len(cards)
		}

		rows := [][]string{}
		for i := m.offset; i < end; i++ {
			c := cards[i]

			cursor := "  "
			if i == m.cursor {
				cursor = "▸ "
			}

			title := c.DisplayTitle()
			if title == "" {
				title = "—"
			}
			if c.Type == board.TypeBoard {
				title += " »"
			}

			pos := fmt.Sprintf("%.0f, %.0f", c.X, c.Y)
			rows = append(rows, []string{cursor, string(c.Type), title, pos})
		}

		headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("", "Type", "Title", "Position").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if m.offset+row == m.cursor {
					return listSelectedStyle
				}
				if col == 3 {
					return listDimStyle
				}
				return lipgloss.NewStyle().Foreground(colorWhite)
			})

		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("  [%d/%d]", m.cursor+1, len(cards))
	if m.status != "" {
		footer += "  " + m.status
	}
	b.WriteString(listDimStyle.Render(footer))

	return b.String()
}
