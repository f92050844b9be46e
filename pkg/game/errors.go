package game

import "errors"

// ErrInvariant 调用方违反了核心的前置条件（程序逻辑错误，而不是玩家猜错）
//
// 例如对非当前章节调用动作、移动到不相邻的城市。
// 正常运行时这些动作被当作空操作拒绝；StrictInvariants 打开时直接 panic。
var ErrInvariant = errors.New("invariant violation")

// ErrNoSnapshot 存储中没有可用的快照
var ErrNoSnapshot = errors.New("no snapshot")
