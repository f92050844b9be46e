// Package scenes 实现基于 Ebitengine 的展示层
//
// Presenter 实现 game.Presenter：SceneManager 每次切换场景时调用 Mount，
// Presenter 创建对应的 Scene 并把它的释放函数登记到场景的 Scope 上。
package scenes

import (
	"bytes"
	"fmt"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

// toast 临时提示
type toast struct {
	fb        game.Feedback
	remaining float64 // 剩余显示时间（秒）
}

// Presenter Ebitengine 展示层
type Presenter struct {
	sm     *game.SceneManager
	logger *zap.Logger

	current   Scene
	snapshot  game.Snapshot
	toast     *toast
	highlight string

	textFace  *text.GoTextFace
	titleFace *text.GoTextFace
	smallFace *text.GoTextFace
}

// NewPresenter 创建展示层并加载字体
func NewPresenter(sm *game.SceneManager, logger *zap.Logger) (*Presenter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &Presenter{
		sm:        sm,
		logger:    logger,
		textFace:  &text.GoTextFace{Source: source, Size: 16},
		titleFace: &text.GoTextFace{Source: source, Size: 28},
		smallFace: &text.GoTextFace{Source: source, Size: 12},
	}, nil
}

// Mount 创建场景的可视元素
func (p *Presenter) Mount(scene int, scope *game.Scope) {
	p.current = p.build(scene)
	p.toast = nil
	p.highlight = ""
	p.logger.Debug("[Presenter] 挂载场景", zap.String("scene", game.SceneName(scene)))

	scope.Defer(func() {
		p.current = nil
		p.toast = nil
		p.highlight = ""
	})
}

func (p *Presenter) build(scene int) Scene {
	switch scene {
	case game.SceneTitle:
		return newTitleScene(p)
	case game.SceneNavigation:
		return newNavigationScene(p)
	case game.SceneChords:
		return newChordsScene(p)
	case game.ScenePuzzle:
		if p.sm.Config().Chapter3.Variant == config.Chapter3Route {
			return newRouteScene(p)
		}
		return newGridScene(p)
	case game.SceneDance:
		return newDanceScene(p)
	default:
		return newFinaleScene(p)
	}
}

// Notify 刷新进度快照
func (p *Presenter) Notify(snapshot game.Snapshot) {
	p.snapshot = snapshot
}

// Feedback 显示一条临时提示，新提示替换旧提示
func (p *Presenter) Feedback(fb game.Feedback) {
	p.toast = &toast{fb: fb, remaining: fb.Linger.Seconds()}
}

// Highlight 舞步回放的当前动作
func (p *Presenter) Highlight(move string) {
	p.highlight = move
}

// Update 处理当前场景的输入并更新提示计时
func (p *Presenter) Update(deltaTime float64) {
	if p.toast != nil {
		p.toast.remaining -= deltaTime
		if p.toast.remaining <= 0 {
			p.toast = nil
		}
	}
	if p.current != nil {
		p.current.Update(deltaTime)
	}
}

// Draw 绘制当前场景、进度指示器和提示
func (p *Presenter) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if p.current != nil {
		p.current.Draw(screen)
	}
	p.drawIndicator(screen)
	p.drawToast(screen)
}

// drawIndicator 顶部五个圆点：已完成实心，当前场景描边高亮
func (p *Presenter) drawIndicator(screen *ebiten.Image) {
	dots := p.snapshot.Indicator()
	total := float64(len(dots)-1) * config.IndicatorSpacing
	startX := (config.GameWindowWidth - total) / 2

	for i, dot := range dots {
		cx := float32(startX + float64(i)*config.IndicatorSpacing)
		cy := float32(config.IndicatorY)
		fill := colorTileOff
		if dot.Done {
			fill = colorSuccess
		}
		vector.DrawFilledCircle(screen, cx, cy, config.IndicatorRadius, fill, true)
		if dot.Current {
			vector.StrokeCircle(screen, cx, cy, config.IndicatorRadius+3, 2, colorAccent, true)
		}
	}
}

func (p *Presenter) drawToast(screen *ebiten.Image) {
	if p.toast == nil {
		return
	}
	clr := colorText
	switch p.toast.fb.Kind {
	case game.FeedbackSuccess:
		clr = colorSuccess
	case game.FeedbackError:
		clr = colorError
	}
	const y = 470.0
	vector.DrawFilledRect(screen, 20, y-6, config.GameWindowWidth-40, 40, colorPanel, true)
	drawParagraph(screen, p.toast.fb.Message, p.smallFace, y, clr)
}

// report 记录动作返回的错误（违反前置条件的动作已被核心拒绝）
func (p *Presenter) report(err error) {
	if err != nil {
		p.logger.Debug("[Presenter] 动作被拒绝", zap.Error(err))
	}
}

// str 获取文本
func (p *Presenter) str(key string) string {
	return p.sm.Strings().GetString(key)
}
