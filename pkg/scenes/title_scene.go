package scenes

import (
	"github.com/decker502/cartographer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TitleScene 标题页
type TitleScene struct {
	p       *Presenter
	input   pointer
	buttons []*button
}

func newTitleScene(p *Presenter) *TitleScene {
	s := &TitleScene{p: p}
	s.buttons = []*button{
		wideButton("Begin", 420, func() { p.report(p.sm.Begin()) }),
	}
	return s
}

func (s *TitleScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.p.report(s.p.sm.Begin())
		return
	}
	if pt, ok := s.input.justPressed(); ok {
		clickButtons(s.buttons, pt)
	}
}

func (s *TitleScene) Draw(screen *ebiten.Image) {
	p := s.p
	drawParagraph(screen, p.str(game.StrTitle), p.titleFace, 140, colorAccent)
	drawParagraph(screen, p.str(game.StrSubtitle), p.textFace, 220, colorText)
	drawParagraph(screen, p.str(game.StrTitleIntro), p.textFace, 290, colorMuted)
	for _, b := range s.buttons {
		b.draw(screen, p.textFace)
	}
}
