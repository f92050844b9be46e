// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session   *Session
	presenter *scenes.Presenter
	logger    *zap.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg *config.QuestConfig, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := NewSession(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	presenter, err := scenes.NewPresenter(session.Manager, logger)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("展示层创建失败: %w", err)
	}
	session.Manager.SetPresenter(presenter)

	if err := session.Manager.Start(); err != nil {
		session.Close()
		return nil, fmt.Errorf("启动失败: %w", err)
	}

	return &App{
		session:   session,
		presenter: presenter,
		logger:    logger,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.logger.Debug("[App] 退出全屏，3 帧后重置窗口大小")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.presenter.Update(deltaTime)
	a.session.Manager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.presenter.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SceneManager 返回场景控制器
func (a *App) SceneManager() *game.SceneManager {
	return a.session.Manager
}

// Close 释放存储连接
func (a *App) Close() error {
	return a.session.Close()
}
