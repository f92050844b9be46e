package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decker502/cartographer/pkg/puzzle"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid quest config")

// 第三章的两种玩法
const (
	Chapter3Grid  = "grid"
	Chapter3Route = "route"
)

// 进度恢复策略
const (
	ResumeFresh    = "fresh"    // 忽略已有快照，总是从标题页开始
	ResumeFurthest = "furthest" // 从快照记录的场景继续
)

// 快照存储后端
const (
	StoreGdata  = "gdata"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreNone   = "none"
)

// DefaultSnapshotKey 快照存储键
const DefaultSnapshotKey = "cartographer_state"

// QuestConfig 整个冒险的配置
type QuestConfig struct {
	Title       string                 `yaml:"title"`
	Seed        uint64                 `yaml:"seed"` // 0 表示按启动时间取种子
	Navigation  puzzle.NavigationRules `yaml:"navigation"`
	Chords      ChordConfig            `yaml:"chords"`
	Chapter3    Chapter3Config         `yaml:"chapter3"`
	Dance       DanceConfig            `yaml:"dance"`
	Timing      TimingConfig           `yaml:"timing"`
	Persistence PersistenceConfig      `yaml:"persistence"`
}

// ChordConfig 吉他章节配置
type ChordConfig struct {
	Target   []string `yaml:"target"`
	Alphabet []string `yaml:"alphabet"`
}

// Chapter3Config 第三章配置，Variant 选择 grid 或 route
type Chapter3Config struct {
	Variant string      `yaml:"variant"`
	Grid    GridConfig  `yaml:"grid"`
	Route   RouteConfig `yaml:"route"`
}

// GridConfig 网格图案配置
type GridConfig struct {
	Target []string `yaml:"target"` // 5 行，'#' 点亮 '.' 熄灭
}

// RouteConfig 航线图配置
type RouteConfig struct {
	Origin      string        `yaml:"origin"`
	Destination string        `yaml:"destination"`
	TargetCost  int           `yaml:"targetCost"`
	Edges       []puzzle.Edge `yaml:"edges"`
}

// DanceConfig 舞步记忆章节配置
type DanceConfig struct {
	Moves  []string `yaml:"moves"`
	Length int      `yaml:"length"`
}

// TimingConfig 反馈和切换节奏
type TimingConfig struct {
	LegAdvance      time.Duration `yaml:"legAdvance"`      // 调帆成功到下一段航程
	ChordsAdvance   time.Duration `yaml:"chordsAdvance"`   // 和弦完成到下一章（等待音乐）
	PuzzleAdvance   time.Duration `yaml:"puzzleAdvance"`   // 第三章完成到下一章
	DanceAdvance    time.Duration `yaml:"danceAdvance"`    // 舞步完成到终章
	MissReplay      time.Duration `yaml:"missReplay"`      // 舞步出错到重新回放
	ReplayLead      time.Duration `yaml:"replayLead"`      // 每一步高亮前的间隔
	ReplayHighlight time.Duration `yaml:"replayHighlight"` // 每一步高亮时长
	ReplayTrailing  time.Duration `yaml:"replayTrailing"`  // 最后一步之后进入输入阶段前的停顿
	FeedbackLinger  time.Duration `yaml:"feedbackLinger"`  // 临时提示的显示时长
}

// PersistenceConfig 快照持久化配置
type PersistenceConfig struct {
	Store      string `yaml:"store"`
	Key        string `yaml:"key"`
	Resume     string `yaml:"resume"`
	AppName    string `yaml:"appName"`    // gdata 应用名
	SQLitePath string `yaml:"sqlitePath"` // sqlite 文件路径，为空时使用内存库
}

// DefaultQuestConfig 返回内置默认配置
func DefaultQuestConfig() *QuestConfig {
	cfg := &QuestConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadQuestConfig 从 YAML 文件加载配置
func LoadQuestConfig(path string) (*QuestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest config file %s: %w", path, err)
	}
	cfg, err := ParseQuestConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseQuestConfig 解析 YAML 配置，应用默认值并校验
func ParseQuestConfig(data []byte) (*QuestConfig, error) {
	var cfg QuestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse quest config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateQuestConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// applyDefaults 为缺失的字段设置默认值
func applyDefaults(cfg *QuestConfig) {
	if cfg.Title == "" {
		cfg.Title = "The Cartographer of Winds"
	}

	nav := &cfg.Navigation
	if nav.Tolerance == 0 {
		nav.Tolerance = puzzle.DefaultTolerance
	}
	if nav.CloseThreshold == 0 {
		nav.CloseThreshold = puzzle.DefaultCloseThreshold
	}
	if nav.Legs == 0 {
		nav.Legs = puzzle.DefaultLegs
	}

	if len(cfg.Chords.Target) == 0 {
		cfg.Chords.Target = append([]string(nil), puzzle.DefaultChordTarget...)
	}
	if len(cfg.Chords.Alphabet) == 0 {
		cfg.Chords.Alphabet = append([]string(nil), puzzle.ChordAlphabet...)
	}

	if cfg.Chapter3.Variant == "" {
		cfg.Chapter3.Variant = Chapter3Grid
	}
	if len(cfg.Chapter3.Grid.Target) == 0 {
		cfg.Chapter3.Grid.Target = append([]string(nil), puzzle.DefaultGridRows...)
	}
	route := &cfg.Chapter3.Route
	if route.Origin == "" {
		route.Origin = puzzle.DefaultRouteOrigin
	}
	if route.Destination == "" {
		route.Destination = puzzle.DefaultRouteDestination
	}
	if route.TargetCost == 0 {
		route.TargetCost = puzzle.DefaultRouteTargetCost
	}
	if len(route.Edges) == 0 {
		route.Edges = append([]puzzle.Edge(nil), puzzle.DefaultRouteEdges...)
	}

	if len(cfg.Dance.Moves) == 0 {
		cfg.Dance.Moves = append([]string(nil), puzzle.DanceMoves...)
	}
	if cfg.Dance.Length == 0 {
		cfg.Dance.Length = puzzle.DefaultSequenceLength
	}

	t := &cfg.Timing
	setDuration(&t.LegAdvance, 1400*time.Millisecond)
	setDuration(&t.ChordsAdvance, 8*time.Second)
	setDuration(&t.PuzzleAdvance, 1200*time.Millisecond)
	setDuration(&t.DanceAdvance, 1200*time.Millisecond)
	setDuration(&t.MissReplay, 900*time.Millisecond)
	setDuration(&t.ReplayLead, 200*time.Millisecond)
	setDuration(&t.ReplayHighlight, 700*time.Millisecond)
	setDuration(&t.ReplayTrailing, 400*time.Millisecond)
	setDuration(&t.FeedbackLinger, 2500*time.Millisecond)

	p := &cfg.Persistence
	if p.Store == "" {
		p.Store = StoreGdata
	}
	if p.Key == "" {
		p.Key = DefaultSnapshotKey
	}
	if p.Resume == "" {
		p.Resume = ResumeFresh
	}
	if p.AppName == "" {
		p.AppName = "cartographer"
	}
}

func setDuration(d *time.Duration, def time.Duration) {
	if *d == 0 {
		*d = def
	}
}

// validateQuestConfig 校验配置的完整性和合法性
// Validate 校验配置，命令行覆盖字段后调用
func (cfg *QuestConfig) Validate() error {
	if err := validateQuestConfig(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func validateQuestConfig(cfg *QuestConfig) error {
	nav := cfg.Navigation
	if nav.Tolerance < 0 || nav.Tolerance > 180 {
		return fmt.Errorf("navigation.tolerance must be between 0 and 180, got %d", nav.Tolerance)
	}
	if nav.CloseThreshold < nav.Tolerance {
		return fmt.Errorf("navigation.closeThreshold (%d) must not be below tolerance (%d)", nav.CloseThreshold, nav.Tolerance)
	}
	if nav.Legs < 1 {
		return fmt.Errorf("navigation.legs must be at least 1, got %d", nav.Legs)
	}

	for i, symbol := range cfg.Chords.Target {
		if !puzzle.InAlphabet(cfg.Chords.Alphabet, symbol) {
			return fmt.Errorf("chords.target[%d]: %q is not in the chord alphabet", i, symbol)
		}
	}

	switch cfg.Chapter3.Variant {
	case Chapter3Grid, Chapter3Route:
	default:
		return fmt.Errorf("chapter3.variant must be one of: grid, route, got %q", cfg.Chapter3.Variant)
	}
	if _, err := puzzle.ParsePattern(cfg.Chapter3.Grid.Target); err != nil {
		return fmt.Errorf("chapter3.grid.target: %w", err)
	}
	if _, err := cfg.RouteRules(); err != nil {
		return fmt.Errorf("chapter3.route: %w", err)
	}

	if cfg.Dance.Length < 1 {
		return fmt.Errorf("dance.length must be at least 1, got %d", cfg.Dance.Length)
	}

	switch cfg.Persistence.Store {
	case StoreGdata, StoreSQLite, StoreMemory, StoreNone:
	default:
		return fmt.Errorf("persistence.store must be one of: gdata, sqlite, memory, none, got %q", cfg.Persistence.Store)
	}
	switch cfg.Persistence.Resume {
	case ResumeFresh, ResumeFurthest:
	default:
		return fmt.Errorf("persistence.resume must be one of: fresh, furthest, got %q", cfg.Persistence.Resume)
	}

	return nil
}

// GridTarget 返回第三章网格的目标图案
func (cfg *QuestConfig) GridTarget() puzzle.Pattern {
	p, err := puzzle.ParsePattern(cfg.Chapter3.Grid.Target)
	if err != nil {
		// 已在加载时校验
		return puzzle.MustParsePattern(puzzle.DefaultGridRows)
	}
	return p
}

// RouteRules 根据航线配置构建判定规则
func (cfg *QuestConfig) RouteRules() (puzzle.RouteRules, error) {
	r := cfg.Chapter3.Route
	g, err := puzzle.NewGraph(r.Edges)
	if err != nil {
		return puzzle.RouteRules{}, err
	}
	if !g.Has(r.Origin) {
		return puzzle.RouteRules{}, fmt.Errorf("origin %q is not in the graph", r.Origin)
	}
	if !g.Has(r.Destination) {
		return puzzle.RouteRules{}, fmt.Errorf("destination %q is not in the graph", r.Destination)
	}
	if r.Origin == r.Destination {
		return puzzle.RouteRules{}, fmt.Errorf("origin and destination are both %q", r.Origin)
	}
	if r.TargetCost <= 0 {
		return puzzle.RouteRules{}, fmt.Errorf("targetCost must be positive, got %d", r.TargetCost)
	}
	return puzzle.RouteRules{
		Graph:       g,
		Origin:      r.Origin,
		Destination: r.Destination,
		TargetCost:  r.TargetCost,
	}, nil
}
