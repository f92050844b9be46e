package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SaveData 快照内容：全局进度和所有章节状态
type SaveData struct {
	SessionID string    `yaml:"sessionId"`
	SavedAt   time.Time `yaml:"savedAt"`
	Variant   string    `yaml:"variant"` // 第三章玩法，切换玩法后旧快照中的第三章状态不可用

	Progress   Progress                `yaml:"progress"`
	Navigation *puzzle.NavigationState `yaml:"navigation,omitempty"`
	Chords     *puzzle.ChordState      `yaml:"chords,omitempty"`
	Grid       *puzzle.GridState       `yaml:"grid,omitempty"`
	Route      *puzzle.RouteState      `yaml:"route,omitempty"`
	Recall     *puzzle.RecallState     `yaml:"recall,omitempty"`
}

// SnapshotRules 校验快照时使用的章节规则
//
// 快照必须能在当前配置下继续游戏，规则都来自当前配置。
type SnapshotRules struct {
	Navigation  puzzle.NavigationRules
	ChordTarget []string
	Route       puzzle.RouteRules
}

// SaveManager 快照管理器
//
// 职责：
//   - 将 GameState 序列化为 YAML 写入 Store
//   - 读取快照并校验
//   - 重新开始时清除快照
//
// 快照只是尽力而为的缓存，调用方应忽略这里返回的错误。
// store 为 nil 时进入降级模式：保存无操作，加载总是 ErrNoSnapshot。
type SaveManager struct {
	store     Store
	key       string
	sessionID string
	logger    *zap.Logger
	now       func() time.Time
}

// NewSaveManager 创建快照管理器
//
// 参数：
//   - store: 存储后端，可为 nil（降级模式）
//   - key: 快照键，如 "cartographer_state"
//   - logger: 日志，可为 nil
func NewSaveManager(store Store, key string, logger *zap.Logger) *SaveManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveManager{
		store:     store,
		key:       key,
		sessionID: uuid.NewString(),
		logger:    logger,
		now:       time.Now,
	}
}

// SessionID 本次运行的会话 ID
func (sm *SaveManager) SessionID() string {
	return sm.sessionID
}

// Enabled 是否有可用的存储后端
func (sm *SaveManager) Enabled() bool {
	return sm.store != nil
}

// Save 保存当前状态
func (sm *SaveManager) Save(gs *GameState, variant string) error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(&SaveData{
		SessionID:  sm.sessionID,
		SavedAt:    sm.now(),
		Variant:    variant,
		Progress:   gs.Progress,
		Navigation: gs.Navigation,
		Chords:     gs.Chords,
		Grid:       gs.Grid,
		Route:      gs.Route,
		Recall:     gs.Recall,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := sm.store.Save(sm.key, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	sm.logger.Debug("[SaveManager] snapshot saved",
		zap.String("key", sm.key),
		zap.Int("activeScene", gs.Progress.ActiveScene))
	return nil
}

// Load 读取快照并按 rules 校验
//
// 返回：
//   - *SaveData: 解析后的快照
//   - error: 没有快照时为 ErrNoSnapshot，内容损坏时为解析或校验错误
func (sm *SaveManager) Load(rules SnapshotRules) (*SaveData, error) {
	if sm.store == nil {
		return nil, ErrNoSnapshot
	}

	raw, err := sm.store.Load(sm.key)
	if err != nil {
		return nil, err
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := validateSaveData(&data, rules); err != nil {
		return nil, fmt.Errorf("corrupted snapshot: %w", err)
	}
	return &data, nil
}

// Clear 删除快照
func (sm *SaveManager) Clear() error {
	if sm.store == nil {
		return nil
	}
	if err := sm.store.Delete(sm.key); err != nil && !errors.Is(err, ErrNoSnapshot) {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// validateSaveData 检查快照中的不变量，避免恢复出无法继续的状态
func validateSaveData(data *SaveData, rules SnapshotRules) error {
	if err := validateProgress(data.Progress); err != nil {
		return err
	}
	if s := data.Navigation; s != nil {
		if s.Leg < 0 || s.WindDeg < 0 || s.WindDeg >= 360 {
			return fmt.Errorf("navigation state out of range: %+v", *s)
		}
		if data.Progress.Completed[ChapterNavigation] {
			if s.Leg > rules.Navigation.Legs {
				return fmt.Errorf("navigation: leg %d exceeds %d legs", s.Leg, rules.Navigation.Legs)
			}
		} else if s.Leg >= rules.Navigation.Legs {
			return fmt.Errorf("navigation: leg %d of %d but chapter not completed", s.Leg, rules.Navigation.Legs)
		}
	}
	if s := data.Chords; s != nil {
		if s.SolvedCount != len(s.Solved) {
			return fmt.Errorf("chords: solvedCount %d does not match %d solved", s.SolvedCount, len(s.Solved))
		}
		if s.SolvedCount > len(rules.ChordTarget) {
			return fmt.Errorf("chords: solvedCount %d exceeds target length %d", s.SolvedCount, len(rules.ChordTarget))
		}
		for i, c := range s.Solved {
			if c != rules.ChordTarget[i] {
				return fmt.Errorf("chords: solved %v is not a prefix of the target", s.Solved)
			}
		}
	}
	if s := data.Route; s != nil {
		if err := validateRoute(s, rules.Route); err != nil {
			return fmt.Errorf("route: %w", err)
		}
	}
	if s := data.Recall; s != nil {
		switch s.Phase {
		case puzzle.PhaseIdle:
		case puzzle.PhaseShowing, puzzle.PhaseInput:
			if len(s.Sequence) == 0 {
				return fmt.Errorf("recall: empty sequence in %s phase", s.Phase)
			}
		default:
			return fmt.Errorf("recall: unknown phase %q", s.Phase)
		}
		if len(s.Input) > len(s.Sequence) {
			return fmt.Errorf("recall: input longer than sequence")
		}
		for i, move := range s.Input {
			if move != s.Sequence[i] {
				return fmt.Errorf("recall: input is not a prefix of the sequence")
			}
		}
	}
	return nil
}

// validateProgress 章节按顺序完成，当前场景不能越过第一个未完成的章节
func validateProgress(p Progress) error {
	if p.ActiveScene < 0 || p.ActiveScene >= SceneCount {
		return fmt.Errorf("activeScene out of range: %d", p.ActiveScene)
	}
	limit := SceneFinale
	for ch := 0; ch < ChapterCount; ch++ {
		if !p.Completed[ch] {
			limit = SceneOfChapter(ch)
			break
		}
	}
	for ch := 1; ch < ChapterCount; ch++ {
		if p.Completed[ch] && !p.Completed[ch-1] {
			return fmt.Errorf("chapter %s completed before %s",
				SceneName(SceneOfChapter(ch)), SceneName(SceneOfChapter(ch-1)))
		}
	}
	if p.ActiveScene > limit {
		return fmt.Errorf("activeScene %s is ahead of %s", SceneName(p.ActiveScene), SceneName(limit))
	}
	return nil
}

// validateRoute 航线必须从起点出发并沿图中的边前进，花费等于边权之和
func validateRoute(s *puzzle.RouteState, rules puzzle.RouteRules) error {
	if len(s.Route) == 0 {
		return fmt.Errorf("empty route")
	}
	if rules.Graph == nil {
		return fmt.Errorf("no route graph configured")
	}
	if s.Route[0] != rules.Origin {
		return fmt.Errorf("starts at %s, want %s", s.Route[0], rules.Origin)
	}
	cost := 0
	for i := 1; i < len(s.Route); i++ {
		if s.Route[i-1] == rules.Destination {
			return fmt.Errorf("continues past %s", rules.Destination)
		}
		w, ok := rules.Graph.Weight(s.Route[i-1], s.Route[i])
		if !ok {
			return fmt.Errorf("%s is not adjacent to %s", s.Route[i], s.Route[i-1])
		}
		cost += w
	}
	if cost != s.Cost {
		return fmt.Errorf("cost %d does not match route weight %d", s.Cost, cost)
	}
	return nil
}
