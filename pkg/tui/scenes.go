package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
)

// 风帆调整步长（度）
const (
	sailFine   = 5
	sailCoarse = 45
)

// moveKeys 方向键到舞步的映射
var moveKeys = map[string]string{
	"left":  "Left",
	"right": "Right",
	"up":    "Turn",
	"down":  "Close",
}

func (m *Model) titleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter", " ":
		m.report(m.sm.Begin())
	}
}

func (m *Model) titleView() string {
	s := m.styles
	return s.Title.Render(m.str(game.StrSubtitle)) + "\n" +
		s.Body.Render(m.str(game.StrTitleIntro))
}

func (m *Model) navigationKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left":
		m.sailDeg = puzzle.NormalizeDeg(m.sailDeg - sailFine)
	case "right":
		m.sailDeg = puzzle.NormalizeDeg(m.sailDeg + sailFine)
	case "down":
		m.sailDeg = puzzle.NormalizeDeg(m.sailDeg - sailCoarse)
	case "up":
		m.sailDeg = puzzle.NormalizeDeg(m.sailDeg + sailCoarse)
	case "enter":
		_, err := m.sm.TrimSail(m.sailDeg)
		m.report(err)
	}
}

func (m *Model) navigationView() string {
	s := m.styles
	nav := m.sm.Navigation()
	legs := m.sm.NavigationRules().Legs

	var b strings.Builder
	b.WriteString(s.Body.Render(m.sm.Strings().NavigationNarrative(nav.Leg)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Leg %d / %d\n", min(nav.Leg+1, legs), legs)
	fmt.Fprintf(&b, "Wind from %s   Sail %s",
		s.Error.Render(fmt.Sprintf("%3d°", nav.WindDeg)),
		s.Accent.Render(fmt.Sprintf("%3d°", m.sailDeg)))
	if m.sm.LegPending() {
		b.WriteString(s.Muted.Render("   …"))
	}
	return b.String()
}

func (m *Model) chordsKey(msg tea.KeyMsg) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return
	}
	symbol := strings.ToUpper(string(msg.Runes[0]))
	if !puzzle.InAlphabet(m.sm.Config().Chords.Alphabet, symbol) {
		return
	}
	_, err := m.sm.PlayChord(symbol)
	m.report(err)
}

func (m *Model) chordsView() string {
	s := m.styles
	chords := m.sm.Chords()
	target := m.sm.Config().Chords.Target

	slots := make([]string, len(target))
	for i := range slots {
		if i < len(chords.Solved) {
			slots[i] = s.Accent.Render(chords.Solved[i])
		} else {
			slots[i] = s.Muted.Render("_")
		}
	}

	var b strings.Builder
	b.WriteString(s.Body.Render(m.str(game.StrChordsIntro)))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(slots, "  "))
	fmt.Fprintf(&b, "\n\n%s", s.Muted.Render(strings.Join(m.sm.Config().Chords.Alphabet, " ")))
	if n := len(chords.Solved); n > 0 {
		if shape, ok := puzzle.ChordShapes[chords.Solved[n-1]]; ok {
			b.WriteString("\n")
			b.WriteString(s.Muted.Render(fretboard(shape)))
		}
	}
	return b.String()
}

// fretboard 文本形式的指法，x 表示不弹
func fretboard(shape [6]int) string {
	parts := make([]string, len(shape))
	for i, fret := range shape {
		if fret < 0 {
			parts[i] = "x"
		} else {
			parts[i] = fmt.Sprint(fret)
		}
	}
	return strings.Join(parts, "-")
}

func (m *Model) gridKey(msg tea.KeyMsg) {
	row, col := m.gridCursor/puzzle.GridSize, m.gridCursor%puzzle.GridSize
	switch msg.String() {
	case "left":
		col = (col + puzzle.GridSize - 1) % puzzle.GridSize
	case "right":
		col = (col + 1) % puzzle.GridSize
	case "up":
		row = (row + puzzle.GridSize - 1) % puzzle.GridSize
	case "down":
		row = (row + 1) % puzzle.GridSize
	case " ", "enter":
		_, err := m.sm.ToggleTile(m.gridCursor)
		m.report(err)
		return
	default:
		return
	}
	m.gridCursor = row*puzzle.GridSize + col
}

func (m *Model) gridView() string {
	s := m.styles
	grid := m.sm.Grid()
	done := m.sm.Progress().Completed[game.ChapterPuzzle]

	var b strings.Builder
	b.WriteString(s.Body.Render(m.str(game.StrGridIntro)))
	b.WriteString("\n\n")
	for i := 0; i < puzzle.GridCells; i++ {
		cell := s.Tile.Render("□")
		if grid.Cells[i] {
			cell = s.TileLit.Render("■")
			if done {
				cell = s.Success.Render("■")
			}
		}
		if i == m.gridCursor && !done {
			cell = s.TileFocus.Render(cell)
		}
		b.WriteString(cell)
		if (i+1)%puzzle.GridSize == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// routeChoices 当前港口可以前往的相邻港口
func (m *Model) routeChoices() []string {
	route := m.sm.Route()
	if len(route.Route) == 0 {
		return nil
	}
	return m.sm.RouteRules().Graph.Neighbors(route.Route[len(route.Route)-1])
}

func (m *Model) routeKey(msg tea.KeyMsg) {
	choices := m.routeChoices()
	switch msg.String() {
	case "left":
		if len(choices) > 0 {
			m.routeFocus = (m.routeFocus + len(choices) - 1) % len(choices)
		}
	case "right":
		if len(choices) > 0 {
			m.routeFocus = (m.routeFocus + 1) % len(choices)
		}
	case "enter":
		if m.routeFocus < len(choices) {
			_, err := m.sm.Hop(choices[m.routeFocus])
			m.report(err)
			m.routeFocus = 0
		}
	case "u", "backspace":
		_, err := m.sm.UndoHop()
		m.report(err)
		m.routeFocus = 0
	case "x", "esc":
		m.report(m.sm.ResetRoute())
		m.routeFocus = 0
	}
}

func (m *Model) routeView() string {
	s := m.styles
	rules := m.sm.RouteRules()
	route := m.sm.Route()

	var b strings.Builder
	b.WriteString(s.Body.Render(m.sm.Strings().Format(game.StrRouteIntro, rules.Origin, rules.Destination, rules.TargetCost)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s   log %d / %d\n\n", strings.Join(route.Route, " → "), route.Cost, rules.TargetCost)

	if m.sm.Progress().Completed[game.ChapterPuzzle] {
		return b.String()
	}
	last := route.Route[len(route.Route)-1]
	for i, next := range m.routeChoices() {
		w, _ := rules.Graph.Weight(last, next)
		label := fmt.Sprintf("%s (%d)", next, w)
		if i == m.routeFocus {
			label = s.Accent.Render("› " + label)
		} else {
			label = s.Muted.Render("  " + label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) danceKey(msg tea.KeyMsg) {
	key := msg.String()
	if key == "w" || key == "enter" {
		if m.sm.Recall().Phase == puzzle.PhaseIdle {
			m.report(m.sm.WatchSequence())
		}
		return
	}
	move, ok := moveKeys[key]
	if !ok || m.sm.Recall().Phase != puzzle.PhaseInput {
		return
	}
	if !puzzle.InAlphabet(m.sm.Config().Dance.Moves, move) {
		return
	}
	_, err := m.sm.EnterMove(move)
	m.report(err)
}

func (m *Model) danceView() string {
	s := m.styles
	recall := m.sm.Recall()

	var b strings.Builder
	b.WriteString(s.Body.Render(m.str(game.StrDanceIntro)))
	b.WriteString("\n\n")

	switch recall.Phase {
	case puzzle.PhaseShowing:
		b.WriteString(s.Muted.Render(m.str(game.StrDanceWatch)))
	case puzzle.PhaseInput:
		b.WriteString(s.Muted.Render(m.str(game.StrDanceYourTurn)))
	}
	b.WriteString("\n\n")

	moves := m.sm.Config().Dance.Moves
	parts := make([]string, len(moves))
	for i, mv := range moves {
		if mv == m.highlight {
			parts[i] = s.Accent.Render("[" + mv + "]")
		} else {
			parts[i] = s.Muted.Render(" " + mv + " ")
		}
	}
	b.WriteString(strings.Join(parts, " "))

	if recall.Phase == puzzle.PhaseInput {
		marks := make([]string, len(recall.Sequence))
		for i := range marks {
			if i < len(recall.Input) {
				marks[i] = "●"
			} else {
				marks[i] = "○"
			}
		}
		b.WriteString("\n\n")
		b.WriteString(strings.Join(marks, " "))
	}
	return b.String()
}

func (m *Model) finaleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "r", "enter":
		m.report(m.sm.Restart())
	}
}

func (m *Model) finaleView() string {
	s := m.styles
	return s.Title.Render(m.str(game.StrFinaleBirthday)) + "\n" +
		s.Body.Render(m.str(game.StrFinale))
}
