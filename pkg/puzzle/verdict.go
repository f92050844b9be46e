// Package puzzle 实现五个章节的谜题判定逻辑
//
// 每个判定函数只接收章节状态和玩家动作，返回 Verdict。
// 随机数（风向、舞步序列）必须在判定之前由调用方通过 Rand 生成，
// 判定过程本身是确定性的。
package puzzle

// Outcome 判定结果
type Outcome int

const (
	// Reject 玩家猜错或动作无效，状态不变（舞步记忆章节除外）
	Reject Outcome = iota
	// Accept 动作正确，章节尚未完成
	Accept
	// Complete 动作正确且章节完成
	Complete
)

// String 返回判定结果名称
func (o Outcome) String() string {
	switch o {
	case Reject:
		return "reject"
	case Accept:
		return "accept"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Severity 拒绝的严重程度，仅用于玩家反馈
type Severity string

const (
	SeverityNone  Severity = ""
	SeverityClose Severity = "close"
	SeverityFar   Severity = "far"
)

// Reject 原因
const (
	ReasonNone            = ""
	ReasonMiss            = "miss"             // 风帆角度不对
	ReasonWrongChord      = "wrong_chord"      // 和弦不匹配
	ReasonWrongCost       = "wrong_cost"       // 到达终点但总距离不对
	ReasonAtDestination   = "at_destination"   // 已在终点，只能撤销或重置
	ReasonWrongMove       = "wrong_move"       // 舞步不匹配
	ReasonAlreadyComplete = "already_complete" // 章节已完成
	ReasonNotAdjacent     = "not_adjacent"     // 目标城市与当前位置不相邻
	ReasonOutOfRange      = "out_of_range"     // 格子索引越界
	ReasonWrongPhase      = "wrong_phase"      // 不在输入阶段
	ReasonUnknownSymbol   = "unknown_symbol"   // 不在字母表内的符号
	ReasonPending         = "pending"          // 上一个动作的结果还在展示中
)

// Verdict 一次判定的结果
type Verdict struct {
	Outcome  Outcome
	Severity Severity
	Reason   string
}

// Accepted 判定是否接受了动作（Accept 或 Complete）
func (v Verdict) Accepted() bool {
	return v.Outcome != Reject
}

// Completed 判定是否完成了章节
func (v Verdict) Completed() bool {
	return v.Outcome == Complete
}

// Violation 判定拒绝是否来自调用方的逻辑错误而不是玩家猜错
//
// 例如向不相邻的城市移动、越界的格子索引、在回放阶段输入舞步。
// 正常界面不会产生这些动作。
func (v Verdict) Violation() bool {
	switch v.Reason {
	case ReasonNotAdjacent, ReasonOutOfRange, ReasonWrongPhase, ReasonUnknownSymbol:
		return true
	}
	return false
}

func accept() Verdict   { return Verdict{Outcome: Accept} }
func complete() Verdict { return Verdict{Outcome: Complete} }

func reject(reason string) Verdict {
	return Verdict{Outcome: Reject, Reason: reason}
}

// InAlphabet 符号是否属于字母表
func InAlphabet(alphabet []string, symbol string) bool {
	for _, s := range alphabet {
		if s == symbol {
			return true
		}
	}
	return false
}
