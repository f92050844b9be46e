package puzzle

import (
	"fmt"
	"strings"
)

// 网格尺寸
const (
	GridSize  = 5
	GridCells = GridSize * GridSize
)

// Pattern 5x5 网格，按行优先存储
type Pattern [GridCells]bool

// DefaultGridRows 默认目标图案（"40"）
var DefaultGridRows = []string{
	"#..##",
	"#..#.",
	"##.#.",
	".#.##",
	".#.##",
}

// ParsePattern 解析行字符串形式的图案
// '#' 或 '1' 表示点亮，'.' 或 '0' 表示熄灭
func ParsePattern(rows []string) (Pattern, error) {
	var p Pattern
	if len(rows) != GridSize {
		return p, fmt.Errorf("pattern needs %d rows, got %d", GridSize, len(rows))
	}
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != GridSize {
			return p, fmt.Errorf("pattern row %d needs %d cells, got %d", r, GridSize, len(row))
		}
		for c, ch := range row {
			switch ch {
			case '#', '1':
				p[r*GridSize+c] = true
			case '.', '0':
			default:
				return p, fmt.Errorf("pattern row %d: invalid cell %q", r, ch)
			}
		}
	}
	return p, nil
}

// MustParsePattern 解析图案，失败时 panic，仅用于包级常量
func MustParsePattern(rows []string) Pattern {
	p, err := ParsePattern(rows)
	if err != nil {
		panic(err)
	}
	return p
}

// Rows 将图案格式化为行字符串
func (p Pattern) Rows() []string {
	rows := make([]string, GridSize)
	for r := 0; r < GridSize; r++ {
		var b strings.Builder
		for c := 0; c < GridSize; c++ {
			if p[r*GridSize+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// Lit 点亮格子的数量
func (p Pattern) Lit() int {
	n := 0
	for _, on := range p {
		if on {
			n++
		}
	}
	return n
}

// GridState 网格章节状态
type GridState struct {
	Cells Pattern `yaml:"cells"`
}

// NewGridState 创建全部熄灭的网格
func NewGridState() *GridState {
	return &GridState{}
}

// ToggleTile 翻转一个格子，翻转后与目标图案完全一致时完成
//
// 有效索引的点击总是被接受。
func ToggleTile(s *GridState, index int, target Pattern) Verdict {
	if index < 0 || index >= GridCells {
		return reject(ReasonOutOfRange)
	}
	s.Cells[index] = !s.Cells[index]
	if s.Cells == target {
		return complete()
	}
	return accept()
}
