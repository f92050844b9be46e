package scenes

import (
	"fmt"
	"strings"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ChordsScene 吉他章节：按顺序弹出目标和弦
type ChordsScene struct {
	p       *Presenter
	input   pointer
	buttons []*button
}

func newChordsScene(p *Presenter) *ChordsScene {
	s := &ChordsScene{p: p}
	s.buttons = buttonRow(p.sm.Config().Chords.Alphabet, config.ButtonRowY, s.play)
	return s
}

func (s *ChordsScene) play(symbol string) {
	_, err := s.p.sm.PlayChord(symbol)
	s.p.report(err)
}

func (s *ChordsScene) Update(deltaTime float64) {
	// 字母键直接弹和弦
	for _, b := range s.buttons {
		if key, ok := letterKey(b.label); ok && inpututil.IsKeyJustPressed(key) {
			s.play(b.label)
			return
		}
	}
	if pt, ok := s.input.justPressed(); ok {
		clickButtons(s.buttons, pt)
	}
}

func (s *ChordsScene) Draw(screen *ebiten.Image) {
	p := s.p
	chords := p.sm.Chords()
	target := p.sm.Config().Chords.Target

	drawParagraph(screen, p.str(game.StrChordsIntro), p.textFace, 50, colorText)

	slots := make([]string, len(target))
	for i := range slots {
		if i < len(chords.Solved) {
			slots[i] = chords.Solved[i]
		} else {
			slots[i] = "_"
		}
	}
	drawCentered(screen, strings.Join(slots, "  "), p.titleFace, config.GameWindowWidth/2, 180, colorAccent)

	// 已弹出的最后一个和弦的指法
	if n := len(chords.Solved); n > 0 {
		if shape, ok := puzzle.ChordShapes[chords.Solved[n-1]]; ok {
			drawFretboard(screen, shape)
		}
	}

	done := p.sm.Progress().Completed[game.ChapterChords]
	for _, b := range s.buttons {
		b.disabled = done
		b.draw(screen, p.textFace)
	}
	drawCentered(screen, fmt.Sprintf("%d / %d", chords.SolvedCount, len(target)), p.smallFace, config.GameWindowWidth/2, 590, colorMuted)
}

// drawFretboard 画出六根弦和按弦位置
func drawFretboard(screen *ebiten.Image, shape [6]int) {
	const (
		left    = 140.0
		top     = 260.0
		stringW = 40.0
		fretH   = 36.0
		frets   = 4
	)
	for i := 0; i < 6; i++ {
		x := float32(left + float64(i)*stringW)
		vector.StrokeLine(screen, x, top, x, top+frets*fretH, 1.5, colorMuted, true)
	}
	for f := 0; f <= frets; f++ {
		y := float32(top + float64(f)*fretH)
		vector.StrokeLine(screen, left, y, left+5*stringW, y, 1.5, colorMuted, true)
	}
	for i, fret := range shape {
		x := float32(left + float64(i)*stringW)
		switch {
		case fret < 0:
			vector.StrokeLine(screen, x-5, top-17, x+5, top-7, 2, colorError, true)
			vector.StrokeLine(screen, x-5, top-7, x+5, top-17, 2, colorError, true)
		case fret == 0:
			vector.StrokeCircle(screen, x, top-12, 5, 2, colorText, true)
		default:
			y := float32(top + (float64(fret)-0.5)*fretH)
			vector.DrawFilledCircle(screen, x, y, 9, colorAccent, true)
		}
	}
}

var letterKeys = map[byte]ebiten.Key{
	'A': ebiten.KeyA,
	'B': ebiten.KeyB,
	'C': ebiten.KeyC,
	'D': ebiten.KeyD,
	'E': ebiten.KeyE,
	'F': ebiten.KeyF,
	'G': ebiten.KeyG,
	'H': ebiten.KeyH,
	'I': ebiten.KeyI,
	'J': ebiten.KeyJ,
	'K': ebiten.KeyK,
	'L': ebiten.KeyL,
	'M': ebiten.KeyM,
	'N': ebiten.KeyN,
	'O': ebiten.KeyO,
	'P': ebiten.KeyP,
	'Q': ebiten.KeyQ,
	'R': ebiten.KeyR,
	'S': ebiten.KeyS,
	'T': ebiten.KeyT,
	'U': ebiten.KeyU,
	'V': ebiten.KeyV,
	'W': ebiten.KeyW,
	'X': ebiten.KeyX,
	'Y': ebiten.KeyY,
	'Z': ebiten.KeyZ,
}

// letterKey 单个字母对应的按键
func letterKey(label string) (ebiten.Key, bool) {
	if len(label) != 1 {
		return 0, false
	}
	key, ok := letterKeys[label[0]]
	return key, ok
}
