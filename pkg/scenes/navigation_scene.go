package scenes

import (
	"fmt"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// sailStep 键盘每次转动风帆的角度
const sailStep = 5

// NavigationScene 航海章节：拖动帆尖，对准风向后提交
type NavigationScene struct {
	p       *Presenter
	input   pointer
	sailDeg int
	buttons []*button
}

func newNavigationScene(p *Presenter) *NavigationScene {
	s := &NavigationScene{p: p}
	s.buttons = []*button{
		wideButton("Trim sail", config.ButtonRowY, s.submit),
	}
	return s
}

func (s *NavigationScene) submit() {
	_, err := s.p.sm.TrimSail(s.sailDeg)
	s.p.report(err)
}

func (s *NavigationScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.sailDeg = puzzle.NormalizeDeg(s.sailDeg - sailStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.sailDeg = puzzle.NormalizeDeg(s.sailDeg + sailStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.submit()
		return
	}

	if pt, ok := s.input.justPressed(); ok && clickButtons(s.buttons, pt) {
		return
	}
	// 拖动罗盘内的任意位置转动风帆
	if pt, ok := s.input.held(); ok && float64(pt.Y) < config.ButtonRowY-10 {
		s.sailDeg = config.CompassAngleAt(float64(pt.X), float64(pt.Y))
	}
}

func (s *NavigationScene) Draw(screen *ebiten.Image) {
	p := s.p
	nav := p.sm.Navigation()
	legs := p.sm.NavigationRules().Legs

	drawParagraph(screen, p.sm.Strings().NavigationNarrative(nav.Leg), p.textFace, 50, colorText)

	cx, cy := float32(config.CompassCenterX), float32(config.CompassCenterY)
	vector.StrokeCircle(screen, cx, cy, config.CompassRadius, 2, colorMuted, true)
	for _, mark := range []struct {
		label string
		deg   int
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		x, y := config.CompassPoint(mark.deg, config.CompassRadius+16)
		drawCentered(screen, mark.label, p.smallFace, x, y-7, colorMuted)
	}

	// 风从 WindDeg 方向吹来，箭头指向下风
	wx0, wy0 := config.CompassPoint(nav.WindDeg, config.CompassRadius-10)
	wx1, wy1 := config.CompassPoint(nav.WindDeg, 30)
	vector.StrokeLine(screen, float32(wx0), float32(wy0), float32(wx1), float32(wy1), 3, colorError, true)
	vector.DrawFilledCircle(screen, float32(wx1), float32(wy1), 5, colorError, true)

	sailColor := colorAccent
	if p.sm.LegPending() {
		sailColor = colorSuccess
	}
	sx, sy := config.CompassPoint(s.sailDeg, config.CompassRadius-20)
	vector.StrokeLine(screen, cx, cy, float32(sx), float32(sy), 4, sailColor, true)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), 8, sailColor, true)

	status := fmt.Sprintf("Leg %d / %d    wind %d°    sail %d°", min(nav.Leg+1, legs), legs, nav.WindDeg, s.sailDeg)
	drawCentered(screen, status, p.smallFace, config.GameWindowWidth/2, 440, colorMuted)
	drawCentered(screen, p.str(game.StrNavHint), p.smallFace, config.GameWindowWidth/2, 580, colorMuted)

	for _, b := range s.buttons {
		b.disabled = p.sm.LegPending()
		b.draw(screen, p.textFace)
	}
}
