package scenes

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RouteScene 第三章（航线）：沿相邻城市航行，总距离恰好等于目标值
type RouteScene struct {
	p         *Presenter
	input     pointer
	nodes     []string
	positions map[string][2]float64
	buttons   []*button
}

func newRouteScene(p *Presenter) *RouteScene {
	s := &RouteScene{
		p:         p,
		nodes:     p.sm.RouteRules().Graph.Nodes(),
		positions: make(map[string][2]float64),
	}
	for i, node := range s.nodes {
		x, y := config.RouteNodePosition(i, len(s.nodes))
		s.positions[node] = [2]float64{x, y}
	}
	s.buttons = buttonRow([]string{"Undo", "Reset"}, config.ButtonRowY, func(label string) {
		if label == "Undo" {
			_, err := p.sm.UndoHop()
			p.report(err)
			return
		}
		p.report(p.sm.ResetRoute())
	})
	return s
}

// nodeAt 点击位置上的城市
func (s *RouteScene) nodeAt(pt image.Point) (string, bool) {
	for _, node := range s.nodes {
		pos := s.positions[node]
		if math.Hypot(float64(pt.X)-pos[0], float64(pt.Y)-pos[1]) <= config.RouteNodeRadius {
			return node, true
		}
	}
	return "", false
}

func (s *RouteScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		_, err := s.p.sm.UndoHop()
		s.p.report(err)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.p.report(s.p.sm.ResetRoute())
		return
	}

	pt, ok := s.input.justPressed()
	if !ok || clickButtons(s.buttons, pt) {
		return
	}
	if node, ok := s.nodeAt(pt); ok {
		_, err := s.p.sm.Hop(node)
		s.p.report(err)
	}
}

func (s *RouteScene) Draw(screen *ebiten.Image) {
	p := s.p
	rules := p.sm.RouteRules()
	route := p.sm.Route()

	intro := p.sm.Strings().Format(game.StrRouteIntro, rules.Origin, rules.Destination, rules.TargetCost)
	drawParagraph(screen, intro, p.textFace, 50, colorText)

	onRoute := make(map[[2]string]bool)
	for i := 1; i < len(route.Route); i++ {
		a, b := route.Route[i-1], route.Route[i]
		onRoute[[2]string{a, b}] = true
		onRoute[[2]string{b, a}] = true
	}

	// 每条边画一次，标出距离
	for _, a := range s.nodes {
		for _, b := range rules.Graph.Neighbors(a) {
			if a > b {
				continue
			}
			pa, pb := s.positions[a], s.positions[b]
			clr := colorMuted
			if onRoute[[2]string{a, b}] {
				clr = colorAccent
			}
			vector.StrokeLine(screen, float32(pa[0]), float32(pa[1]), float32(pb[0]), float32(pb[1]), 2, clr, true)
			w, _ := rules.Graph.Weight(a, b)
			drawCentered(screen, fmt.Sprint(w), p.smallFace, (pa[0]+pb[0])/2, (pa[1]+pb[1])/2-14, colorText)
		}
	}

	current := ""
	if len(route.Route) > 0 {
		current = route.Route[len(route.Route)-1]
	}
	for _, node := range s.nodes {
		pos := s.positions[node]
		fill := colorPanel
		switch node {
		case current:
			fill = colorAccent
		case rules.Destination:
			fill = colorSuccess
		}
		vector.DrawFilledCircle(screen, float32(pos[0]), float32(pos[1]), config.RouteNodeRadius, fill, true)
		drawCentered(screen, node, p.smallFace, pos[0], pos[1]-7, colorText)
	}

	log := fmt.Sprintf("%s    log %d / %d", strings.Join(route.Route, " → "), route.Cost, rules.TargetCost)
	drawCentered(screen, log, p.smallFace, config.GameWindowWidth/2, 580, colorMuted)

	for _, b := range s.buttons {
		b.disabled = p.sm.Progress().Completed[game.ChapterPuzzle]
		b.draw(screen, p.textFace)
	}
}
