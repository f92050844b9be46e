package scenes

import (
	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridScene 第三章（网格）：点亮格子拼出目标图案
type GridScene struct {
	p     *Presenter
	input pointer
}

func newGridScene(p *Presenter) *GridScene {
	return &GridScene{p: p}
}

func (s *GridScene) Update(deltaTime float64) {
	pt, ok := s.input.justPressed()
	if !ok {
		return
	}
	if index, ok := config.GridIndexAt(float64(pt.X), float64(pt.Y)); ok {
		_, err := s.p.sm.ToggleTile(index)
		s.p.report(err)
	}
}

func (s *GridScene) Draw(screen *ebiten.Image) {
	p := s.p
	grid := p.sm.Grid()
	done := p.sm.Progress().Completed[game.ChapterPuzzle]

	drawParagraph(screen, p.str(game.StrGridIntro), p.textFace, 60, colorText)

	for i := 0; i < puzzle.GridCells; i++ {
		x, y := config.GridCellOrigin(i)
		fill := colorTileOff
		if grid.Cells[i] {
			fill = colorAccent
			if done {
				fill = colorSuccess
			}
		}
		const gap = 3.0
		vector.DrawFilledRect(screen, float32(x+gap), float32(y+gap),
			config.GridCellSize-2*gap, config.GridCellSize-2*gap, fill, true)
	}
}
