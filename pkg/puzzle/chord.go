package puzzle

// DefaultChordTarget 吉他章节的目标和弦序列
var DefaultChordTarget = []string{"A", "G", "E", "D"}

// ChordAlphabet 吉他章节可按的和弦
var ChordAlphabet = []string{"A", "B", "C", "D", "E", "F", "G"}

// ChordShapes 和弦指法（六根弦的品位，-1 表示不弹）
var ChordShapes = map[string][6]int{
	"A": {-1, 0, 2, 2, 2, 0},
	"G": {3, 2, 0, 0, 0, 3},
	"E": {0, 2, 2, 1, 0, 0},
	"D": {-1, -1, 0, 2, 3, 2},
}

// ChordState 吉他章节状态
type ChordState struct {
	SolvedCount int      `yaml:"solvedCount"`
	Solved      []string `yaml:"solved"`
}

// NewChordState 创建吉他章节状态
func NewChordState() *ChordState {
	return &ChordState{Solved: []string{}}
}

// Next 返回下一个需要弹的和弦
func (s *ChordState) Next(target []string) (string, bool) {
	if s.SolvedCount >= len(target) {
		return "", false
	}
	return target[s.SolvedCount], true
}

// EvaluateChord 判定一次按和弦
//
// 错误的和弦不会改变状态，玩家可以立即重试。
func EvaluateChord(s *ChordState, symbol string, target []string) Verdict {
	expected, ok := s.Next(target)
	if !ok {
		return reject(ReasonAlreadyComplete)
	}
	if symbol != expected {
		return reject(ReasonWrongChord)
	}

	s.Solved = append(s.Solved, symbol)
	s.SolvedCount++
	if s.SolvedCount == len(target) {
		return complete()
	}
	return accept()
}
