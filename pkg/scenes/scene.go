package scenes

import "github.com/hajimehoshi/ebiten/v2"

// Scene 一个场景的输入处理和绘制
// 由 Presenter 在 Mount 时创建，场景离开时丢弃
type Scene interface {
	// Update 处理输入，deltaTime 单位为秒
	Update(deltaTime float64)
	// Draw 绘制场景内容（进度指示器和提示由 Presenter 统一绘制）
	Draw(screen *ebiten.Image)
}
