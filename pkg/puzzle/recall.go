package puzzle

// Phase 舞步记忆章节的阶段
type Phase string

const (
	PhaseIdle    Phase = "idle"    // 等待玩家请求观看
	PhaseShowing Phase = "showing" // 正在回放序列，不接受输入
	PhaseInput   Phase = "input"   // 玩家输入中
)

// DanceMoves 舞步字母表
var DanceMoves = []string{"Left", "Right", "Turn", "Close"}

// DefaultSequenceLength 舞步序列长度
const DefaultSequenceLength = 4

// RecallState 舞步记忆章节状态
type RecallState struct {
	Sequence []string `yaml:"sequence"`
	Input    []string `yaml:"input"`
	Phase    Phase    `yaml:"phase"`
}

// NewRecallState 创建空闲阶段的状态
func NewRecallState() *RecallState {
	return &RecallState{Phase: PhaseIdle}
}

// StartWatch 生成新的舞步序列并进入回放阶段
func StartWatch(s *RecallState, rng Rand, alphabet []string, n int) {
	seq := make([]string, n)
	for i := range seq {
		seq[i] = alphabet[rng.IntN(len(alphabet))]
	}
	s.Sequence = seq
	s.Input = nil
	s.Phase = PhaseShowing
}

// FinishShowing 回放结束，进入输入阶段
func FinishShowing(s *RecallState) {
	s.Input = nil
	s.Phase = PhaseInput
}

// EvaluateMove 判定一次舞步输入
//
// 第一个错误会清空输入并回到回放阶段，强制重新观看整个序列。
func EvaluateMove(s *RecallState, move string) Verdict {
	if s.Phase != PhaseInput {
		return reject(ReasonWrongPhase)
	}
	if len(s.Input) >= len(s.Sequence) {
		return reject(ReasonAlreadyComplete)
	}

	if move != s.Sequence[len(s.Input)] {
		s.Input = nil
		s.Phase = PhaseShowing
		return reject(ReasonWrongMove)
	}

	s.Input = append(s.Input, move)
	if len(s.Input) == len(s.Sequence) {
		return complete()
	}
	return accept()
}
