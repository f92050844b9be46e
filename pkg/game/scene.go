package game

import "time"

// Presenter 展示层契约
//
// 展示层负责绘制和输入绑定，通过 SceneManager 的动作方法回调核心逻辑。
// 核心只通过以下方法通知展示层，展示层无法借此修改核心状态。
type Presenter interface {
	// Mount 创建场景的可视元素并绑定输入
	// 绑定和计时器必须登记到 scope，场景离开时统一释放
	Mount(scene int, scope *Scope)

	// Notify 每次状态变化后推送只读快照，用于刷新进度指示器
	Notify(snapshot Snapshot)

	// Feedback 显示一条临时、非阻塞的提示
	Feedback(fb Feedback)

	// Highlight 舞步回放时高亮一个动作，空字符串表示清除高亮
	Highlight(move string)
}

// FeedbackKind 提示类型
type FeedbackKind int

const (
	FeedbackInfo FeedbackKind = iota
	FeedbackSuccess
	FeedbackError
)

// Feedback 一条临时提示
type Feedback struct {
	Scene   int
	Kind    FeedbackKind
	Message string
	Linger  time.Duration // 建议显示时长
}

// NopPresenter 什么都不做的展示层，用于无界面运行
type NopPresenter struct{}

func (NopPresenter) Mount(int, *Scope) {}
func (NopPresenter) Notify(Snapshot) {}
func (NopPresenter) Feedback(Feedback) {}
func (NopPresenter) Highlight(string) {}
