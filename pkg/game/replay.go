package game

import (
	"github.com/decker502/cartographer/pkg/puzzle"
)

// replay 从第 step 步开始回放舞步序列
//
// 每一步：等待 ReplayLead → 高亮 → 等待 ReplayHighlight → 清除高亮。
// 最后一步之后停顿 ReplayTrailing，然后进入输入阶段。
// 所有计时器都登记在当前 Scope 上，离开场景时一并取消。
func (sm *SceneManager) replay(step int) {
	scope := sm.scope
	recall := sm.state.Recall
	t := sm.cfg.Timing

	if step >= len(recall.Sequence) {
		scope.After(timerReplay, t.ReplayTrailing, func() {
			puzzle.FinishShowing(recall)
			sm.feedback(FeedbackInfo, sm.strings.GetString(StrDanceYourTurn))
			sm.notify()
			sm.persist()
		})
		return
	}

	move := recall.Sequence[step]
	scope.After(timerReplay, t.ReplayLead, func() {
		sm.setHighlight(move)
		scope.After(timerReplay, t.ReplayHighlight, func() {
			sm.setHighlight("")
			sm.replay(step + 1)
		})
	})
}

func (sm *SceneManager) setHighlight(move string) {
	sm.highlight = move
	sm.presenter.Highlight(move)
}
