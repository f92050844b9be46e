package game

import (
	"github.com/decker502/cartographer/pkg/puzzle"
)

// GameState 一次游玩的全部可变状态
//
// 由 SceneManager 独占持有，并以参数形式交给判定函数，不存在全局单例。
// 章节状态在首次进入该章节时创建，为 nil 表示尚未进入。
type GameState struct {
	Progress Progress

	Navigation *puzzle.NavigationState
	Chords     *puzzle.ChordState
	Grid       *puzzle.GridState
	Route      *puzzle.RouteState
	Recall     *puzzle.RecallState
}

// NewGameState 创建位于标题页的初始状态
func NewGameState() *GameState {
	return &GameState{}
}

// Reset 恢复到初始状态，丢弃所有章节状态
func (gs *GameState) Reset() {
	*gs = GameState{}
}

// Snapshot 生成只读进度快照
func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		ActiveScene: gs.Progress.ActiveScene,
		Completed:   gs.Progress.Completed,
		Started:     gs.Progress.Started,
	}
}

// Restore 用存档数据覆盖当前状态
func (gs *GameState) Restore(data *SaveData) {
	gs.Progress = data.Progress
	gs.Navigation = data.Navigation
	gs.Chords = data.Chords
	gs.Grid = data.Grid
	gs.Route = data.Route
	gs.Recall = data.Recall
}
