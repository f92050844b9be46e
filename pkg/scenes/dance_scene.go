package scenes

import (
	"strings"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// moveKeys 方向键到舞步的映射
var moveKeys = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyArrowUp:    "Turn",
	ebiten.KeyArrowDown:  "Close",
}

// DanceScene 舞步记忆章节：观看回放，然后按顺序重复
type DanceScene struct {
	p       *Presenter
	input   pointer
	watch   *button
	buttons []*button
}

func newDanceScene(p *Presenter) *DanceScene {
	s := &DanceScene{p: p}
	s.watch = wideButton("Watch", 420, func() { p.report(p.sm.WatchSequence()) })
	s.buttons = buttonRow(p.sm.Config().Dance.Moves, config.ButtonRowY, s.move)
	return s
}

func (s *DanceScene) move(m string) {
	_, err := s.p.sm.EnterMove(m)
	s.p.report(err)
}

func (s *DanceScene) Update(deltaTime float64) {
	recall := s.p.sm.Recall()
	s.watch.disabled = recall.Phase != puzzle.PhaseIdle
	for _, b := range s.buttons {
		b.disabled = recall.Phase != puzzle.PhaseInput
	}

	switch recall.Phase {
	case puzzle.PhaseIdle:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.p.report(s.p.sm.WatchSequence())
			return
		}
	case puzzle.PhaseInput:
		for key, m := range moveKeys {
			if inpututil.IsKeyJustPressed(key) && puzzle.InAlphabet(s.p.sm.Config().Dance.Moves, m) {
				s.move(m)
				return
			}
		}
	}

	if pt, ok := s.input.justPressed(); ok {
		all := append([]*button{s.watch}, s.buttons...)
		clickButtons(all, pt)
	}
}

func (s *DanceScene) Draw(screen *ebiten.Image) {
	p := s.p
	recall := p.sm.Recall()

	drawParagraph(screen, p.str(game.StrDanceIntro), p.textFace, 50, colorText)

	var status string
	switch recall.Phase {
	case puzzle.PhaseShowing:
		status = p.str(game.StrDanceWatch)
	case puzzle.PhaseInput:
		status = p.str(game.StrDanceYourTurn)
	}
	drawCentered(screen, status, p.textFace, config.GameWindowWidth/2, 200, colorMuted)

	// 回放中高亮当前动作
	drawCentered(screen, p.highlight, p.titleFace, config.GameWindowWidth/2, 260, colorAccent)

	if recall.Phase == puzzle.PhaseInput {
		marks := make([]string, len(recall.Sequence))
		for i := range marks {
			if i < len(recall.Input) {
				marks[i] = "●"
			} else {
				marks[i] = "○"
			}
		}
		drawCentered(screen, strings.Join(marks, " "), p.textFace, config.GameWindowWidth/2, 330, colorText)
	}

	s.watch.draw(screen, p.textFace)
	for _, b := range s.buttons {
		b.active = p.highlight != "" && b.label == p.highlight
		b.draw(screen, p.smallFace)
	}
}
