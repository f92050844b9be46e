package puzzle

// 航海章节默认参数
const (
	DefaultTolerance      = 20 // 允许的最大偏差（度）
	DefaultCloseThreshold = 45 // 偏差不超过该值时提示"接近"
	DefaultLegs           = 3  // 完成章节所需的航段数
)

// NavigationRules 航海章节规则
type NavigationRules struct {
	Tolerance      int  `yaml:"tolerance"`
	CloseThreshold int  `yaml:"closeThreshold"`
	Legs           int  `yaml:"legs"`
	TwoTack        bool `yaml:"twoTack"` // 是否同时接受 wind+270 的另一舷
}

// DefaultNavigationRules 返回默认规则
func DefaultNavigationRules() NavigationRules {
	return NavigationRules{
		Tolerance:      DefaultTolerance,
		CloseThreshold: DefaultCloseThreshold,
		Legs:           DefaultLegs,
	}
}

// NavigationState 航海章节状态
type NavigationState struct {
	Leg     int `yaml:"leg"`     // 已完成航段数
	WindDeg int `yaml:"windDeg"` // 当前风向 0..359
}

// NewNavigationState 创建航海章节状态并为第一段航程掷出风向
func NewNavigationState(rng Rand) *NavigationState {
	s := &NavigationState{}
	s.RollWind(rng)
	return s
}

// RollWind 每段航程开始时重新随机风向
func (s *NavigationState) RollWind(rng Rand) {
	s.WindDeg = rng.IntN(360)
}

// Done 章节是否已完成
func (s *NavigationState) Done(rules NavigationRules) bool {
	return s.Leg >= rules.Legs
}

// NormalizeDeg 将角度规范到 0..359
func NormalizeDeg(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CircularDistance 圆周上两个方向之间较短的夹角
func CircularDistance(a, b int) int {
	d := NormalizeDeg(a) - NormalizeDeg(b)
	if d < 0 {
		d = -d
	}
	if 360-d < d {
		return 360 - d
	}
	return d
}

// OptimalSailDeg 给定风向的最佳帆角
func OptimalSailDeg(windDeg int) int {
	return NormalizeDeg(windDeg + 90)
}

// TrimDistance 帆角到最近的有效帆角的距离
func (r NavigationRules) TrimDistance(windDeg, sailDeg int) int {
	d := CircularDistance(sailDeg, OptimalSailDeg(windDeg))
	if r.TwoTack {
		if other := CircularDistance(sailDeg, NormalizeDeg(windDeg+270)); other < d {
			d = other
		}
	}
	return d
}

// EvaluateTrim 判定一次调帆
//
// 接受时 Leg 加一；达到 Legs 时返回 Complete。
// 下一段航程的风向由调用方在航段切换时重新随机。
func EvaluateTrim(s *NavigationState, sailDeg int, rules NavigationRules) Verdict {
	if s.Done(rules) {
		return reject(ReasonAlreadyComplete)
	}

	d := rules.TrimDistance(s.WindDeg, sailDeg)
	if d > rules.Tolerance {
		v := reject(ReasonMiss)
		if d <= rules.CloseThreshold {
			v.Severity = SeverityClose
		} else {
			v.Severity = SeverityFar
		}
		return v
	}

	s.Leg++
	if s.Done(rules) {
		return complete()
	}
	return accept()
}
