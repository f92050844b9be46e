package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/decker502/cartographer/pkg/game"
)

// Run 在终端中运行任务，直到玩家退出
func Run(sm *game.SceneManager, logger *zap.Logger, opts ...tea.ProgramOption) error {
	m := NewModel(sm, logger)
	if err := sm.Start(); err != nil {
		return fmt.Errorf("failed to start quest: %w", err)
	}
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
