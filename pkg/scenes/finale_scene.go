package scenes

import (
	"github.com/decker502/cartographer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// FinaleScene 终章
type FinaleScene struct {
	p       *Presenter
	input   pointer
	buttons []*button
}

func newFinaleScene(p *Presenter) *FinaleScene {
	s := &FinaleScene{p: p}
	s.buttons = []*button{
		wideButton("Play again", 520, func() { p.report(p.sm.Restart()) }),
	}
	return s
}

func (s *FinaleScene) Update(deltaTime float64) {
	if pt, ok := s.input.justPressed(); ok {
		clickButtons(s.buttons, pt)
	}
}

func (s *FinaleScene) Draw(screen *ebiten.Image) {
	p := s.p
	drawParagraph(screen, p.str(game.StrFinaleBirthday), p.titleFace, 180, colorAccent)
	drawParagraph(screen, p.str(game.StrFinale), p.textFace, 280, colorText)
	for _, b := range s.buttons {
		b.draw(screen, p.textFace)
	}
}
