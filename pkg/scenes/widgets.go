package scenes

import (
	"image"
	"image/color"
	"strings"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 配色
var (
	colorBackground = color.RGBA{R: 18, G: 32, B: 54, A: 255}
	colorPanel      = color.RGBA{R: 36, G: 58, B: 92, A: 255}
	colorText       = color.RGBA{R: 236, G: 230, B: 214, A: 255}
	colorMuted      = color.RGBA{R: 150, G: 160, B: 180, A: 255}
	colorAccent     = color.RGBA{R: 242, G: 183, B: 5, A: 255}
	colorSuccess    = color.RGBA{R: 96, G: 200, B: 120, A: 255}
	colorError      = color.RGBA{R: 230, G: 90, B: 80, A: 255}
	colorTileOff    = color.RGBA{R: 44, G: 66, B: 100, A: 255}
)

// button 矩形按钮
type button struct {
	label    string
	x, y     float64
	w, h     float64
	disabled bool
	active   bool // 高亮（例如舞步回放）
	onClick  func()
}

func (b *button) contains(p image.Point) bool {
	fx, fy := float64(p.X), float64(p.Y)
	return fx >= b.x && fx < b.x+b.w && fy >= b.y && fy < b.y+b.h
}

func (b *button) draw(screen *ebiten.Image, face text.Face) {
	fill := colorPanel
	switch {
	case b.active:
		fill = colorAccent
	case b.disabled:
		fill = color.RGBA{R: 30, G: 40, B: 56, A: 255}
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), fill, true)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1.5, colorMuted, true)

	clr := colorText
	if b.disabled {
		clr = colorMuted
	}
	drawCentered(screen, b.label, face, b.x+b.w/2, b.y+b.h/2-8, clr)
}

// buttonRow 在 y 处创建一行居中的按钮
func buttonRow(labels []string, y float64, onClick func(label string)) []*button {
	buttons := make([]*button, len(labels))
	for i, label := range labels {
		buttons[i] = &button{
			label:   label,
			x:       config.ButtonRowX(len(labels), i),
			y:       y,
			w:       config.ButtonWidth,
			h:       config.ButtonHeight,
			onClick: func() { onClick(label) },
		}
	}
	return buttons
}

// wideButton 居中的宽按钮
func wideButton(label string, y float64, onClick func()) *button {
	const w = 160.0
	return &button{
		label:   label,
		x:       (config.GameWindowWidth - w) / 2,
		y:       y,
		w:       w,
		h:       config.ButtonHeight,
		onClick: onClick,
	}
}

// clickButtons 把点击分发给命中的按钮，返回是否命中
func clickButtons(buttons []*button, p image.Point) bool {
	for _, b := range buttons {
		if b.disabled || !b.contains(p) {
			continue
		}
		b.onClick()
		return true
	}
	return false
}

// pointer 鼠标和触屏的统一输入
type pointer struct {
	touchIDs []ebiten.TouchID
}

// justPressed 本帧按下的位置
func (ptr *pointer) justPressed() (image.Point, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return image.Pt(x, y), true
	}
	ptr.touchIDs = inpututil.AppendJustPressedTouchIDs(ptr.touchIDs[:0])
	if len(ptr.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(ptr.touchIDs[0])
		return image.Pt(x, y), true
	}
	return image.Point{}, false
}

// held 按住（拖动）中的位置
func (ptr *pointer) held() (image.Point, bool) {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return image.Pt(x, y), true
	}
	ptr.touchIDs = ebiten.AppendTouchIDs(ptr.touchIDs[:0])
	if len(ptr.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(ptr.touchIDs[0])
		return image.Pt(x, y), true
	}
	return image.Point{}, false
}

// drawCentered 以 (cx, y) 为顶部中点绘制单行文本
func drawCentered(screen *ebiten.Image, s string, face text.Face, cx, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

// drawParagraph 自动换行并居中绘制一段文本，返回下一行的 Y
func drawParagraph(screen *ebiten.Image, s string, face text.Face, y float64, clr color.Color) float64 {
	const lineHeight = 22.0
	for _, line := range wrapText(s, 44) {
		drawCentered(screen, line, face, config.GameWindowWidth/2, y, clr)
		y += lineHeight
	}
	return y
}

// wrapText 按单词换行，每行不超过 width 个字符（单词本身过长时单独成行）
func wrapText(s string, width int) []string {
	var lines []string
	var current strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			lines = append(lines, current.String())
			current.Reset()
			n = 0
		}
		if n > 0 {
			current.WriteByte(' ')
			n++
		}
		current.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
