// Package tui 终端版展示层
//
// Model 同时实现 tea.Model 和 game.Presenter：按键转成 SceneManager 的动作，
// 核心的通知写回 Model，由 View 渲染成文本。
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
)

// routeVariant 第三章的航线玩法
const routeVariant = config.Chapter3Route

// frameInterval 终端刷新间隔，每帧按此推进核心计时器
const frameInterval = 50 * time.Millisecond

// tickMsg 帧消息
type tickMsg time.Time

// toast 临时提示
type toast struct {
	kind      game.FeedbackKind
	message   string
	remaining time.Duration
}

// Model 终端界面模型
type Model struct {
	sm     *game.SceneManager
	logger *zap.Logger
	styles Styles

	scene     int
	snapshot  game.Snapshot
	toast     *toast
	highlight string

	// 各场景的光标
	sailDeg    int
	gridCursor int
	routeFocus int

	quitting bool
}

// NewModel 创建终端界面并注册为 sm 的展示层
//
// 调用方随后需要调用 sm.Start() 挂载第一个场景。
func NewModel(sm *game.SceneManager, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		sm:     sm,
		logger: logger,
		styles: DefaultStyles(),
		scene:  sm.ActiveScene(),
	}
	sm.SetPresenter(m)
	return m
}

// Mount 实现 game.Presenter
func (m *Model) Mount(scene int, scope *game.Scope) {
	m.scene = scene
	m.sailDeg = 0
	m.gridCursor = 0
	m.routeFocus = 0
	scope.Defer(func() {
		m.toast = nil
		m.highlight = ""
	})
}

// Notify 实现 game.Presenter
func (m *Model) Notify(snapshot game.Snapshot) {
	m.snapshot = snapshot
}

// Feedback 实现 game.Presenter
func (m *Model) Feedback(fb game.Feedback) {
	m.toast = &toast{kind: fb.Kind, message: fb.Message, remaining: fb.Linger}
}

// Highlight 实现 game.Presenter
func (m *Model) Highlight(move string) {
	m.highlight = move
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init 实现 tea.Model
func (m *Model) Init() tea.Cmd {
	m.snapshot = m.sm.Snapshot()
	return tick()
}

// Update 实现 tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tickMsg:
		m.step(frameInterval)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, nil
	}
	return m, nil
}

// step 推进提示倒计时和核心计时器
func (m *Model) step(dt time.Duration) {
	if m.toast != nil {
		m.toast.remaining -= dt
		if m.toast.remaining <= 0 {
			m.toast = nil
		}
	}
	m.sm.Advance(dt)
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch m.scene {
	case game.SceneTitle:
		m.titleKey(msg)
	case game.SceneNavigation:
		m.navigationKey(msg)
	case game.SceneChords:
		m.chordsKey(msg)
	case game.ScenePuzzle:
		if m.snapshot.Variant == routeVariant {
			m.routeKey(msg)
		} else {
			m.gridKey(msg)
		}
	case game.SceneDance:
		m.danceKey(msg)
	case game.SceneFinale:
		m.finaleKey(msg)
	}
}

// report 非法操作只记录日志，界面层不会因此中断
func (m *Model) report(err error) {
	if err != nil {
		m.logger.Debug("[TUI] 操作被拒绝", zap.Error(err))
	}
}

func (m *Model) str(key string) string {
	return m.sm.Strings().GetString(key)
}

// View 实现 tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.str(game.StrTitle)))
	b.WriteString("  ")
	b.WriteString(m.indicator())
	b.WriteString("\n\n")
	b.WriteString(m.body())

	if m.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(m.toastStyle().Render(m.toast.message))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help() + " • q: quit"))
	return m.styles.Frame.Render(b.String())
}

func (m *Model) toastStyle() lipgloss.Style {
	switch m.toast.kind {
	case game.FeedbackSuccess:
		return m.styles.Success
	case game.FeedbackError:
		return m.styles.Error
	default:
		return m.styles.Accent
	}
}

// indicator 五个进度圆点：● 已完成，◉ 当前，○ 未到达
func (m *Model) indicator() string {
	dots := m.snapshot.Indicator()
	parts := make([]string, len(dots))
	for i, d := range dots {
		switch {
		case d.Current:
			parts[i] = m.styles.Accent.Render("◉")
		case d.Done:
			parts[i] = m.styles.Success.Render("●")
		default:
			parts[i] = m.styles.Muted.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) body() string {
	switch m.scene {
	case game.SceneTitle:
		return m.titleView()
	case game.SceneNavigation:
		return m.navigationView()
	case game.SceneChords:
		return m.chordsView()
	case game.ScenePuzzle:
		if m.snapshot.Variant == routeVariant {
			return m.routeView()
		}
		return m.gridView()
	case game.SceneDance:
		return m.danceView()
	case game.SceneFinale:
		return m.finaleView()
	}
	return ""
}

func (m *Model) help() string {
	switch m.scene {
	case game.SceneTitle:
		return "enter: begin"
	case game.SceneNavigation:
		return "←/→: ±5° • ↑/↓: ±45° • enter: trim"
	case game.SceneChords:
		return "a-g: play chord"
	case game.ScenePuzzle:
		if m.snapshot.Variant == routeVariant {
			return "←/→: choose port • enter: sail • u: undo • x: reset"
		}
		return "arrows: move • space: toggle"
	case game.SceneDance:
		return "w: watch • ←/→/↑/↓: Left/Right/Turn/Close"
	case game.SceneFinale:
		return "r: play again"
	}
	return ""
}
