package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/puzzle"
	"go.uber.org/zap"
)

// 计时器名称
const (
	timerAdvance = "advance" // 章节完成后切换到下一场景
	timerLeg     = "leg"     // 航段之间的停顿
	timerReplay  = "replay"  // 舞步回放
)

// Options SceneManager 的可选依赖，零值可用
type Options struct {
	Presenter Presenter
	Saves     *SaveManager
	Rand      puzzle.Rand
	Logger    *zap.Logger
	Strings   *QuestStrings
}

// SceneManager 场景控制器
//
// 职责：
//   - 持有唯一的 GameState，按顺序推进 标题 → 四个章节 → 终章
//   - 切换场景时先拆除旧场景的 Scope，再挂载新场景
//   - 把玩家动作交给 puzzle 判定，并把结果转换为提示、进度和快照
//
// 所有方法都应在同一个 goroutine（游戏主循环）中调用。
type SceneManager struct {
	cfg       *config.QuestConfig
	state     *GameState
	presenter Presenter
	saves     *SaveManager
	rng       puzzle.Rand
	logger    *zap.Logger
	strings   *QuestStrings

	scope      *Scope
	navRules   puzzle.NavigationRules
	routeRules puzzle.RouteRules
	gridTarget puzzle.Pattern

	legPending bool   // 航段成功后等待下一段航程
	highlight  string // 回放中高亮的舞步

	// StrictInvariants 打开后，违反前置条件的调用直接 panic（用于测试和调试）
	StrictInvariants bool
}

// NewSceneManager 创建场景控制器
//
// 创建后位于标题页但尚未挂载任何场景，需要调用 Start。
func NewSceneManager(cfg *config.QuestConfig, opts Options) (*SceneManager, error) {
	if cfg == nil {
		cfg = config.DefaultQuestConfig()
	}

	routeRules, err := cfg.RouteRules()
	if err != nil {
		return nil, fmt.Errorf("failed to build route rules: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Saves == nil {
		opts.Saves = NewSaveManager(nil, cfg.Persistence.Key, opts.Logger)
	}
	if opts.Rand == nil {
		opts.Rand = puzzle.NewRand(cfg.Seed)
	}
	if opts.Strings == nil {
		opts.Strings = DefaultQuestStrings()
	}

	return &SceneManager{
		cfg:        cfg,
		state:      NewGameState(),
		presenter:  opts.Presenter,
		saves:      opts.Saves,
		rng:        opts.Rand,
		logger:     opts.Logger,
		strings:    opts.Strings,
		navRules:   cfg.Navigation,
		routeRules: routeRules,
		gridTarget: cfg.GridTarget(),
	}, nil
}

// SetPresenter 替换展示层，在 Start 之前调用
func (sm *SceneManager) SetPresenter(p Presenter) {
	if p == nil {
		p = NopPresenter{}
	}
	sm.presenter = p
}

// Start 按恢复策略挂载第一个场景
//
// fresh：总是从标题页开始。
// furthest：读取快照，回到最远的未完成场景；快照缺失或损坏时从标题页开始。
func (sm *SceneManager) Start() error {
	if sm.cfg.Persistence.Resume == config.ResumeFurthest {
		data, err := sm.saves.Load(sm.SnapshotRules())
		switch {
		case err == nil:
			sm.restore(data)
			sm.logger.Info("[SceneManager] 从快照恢复",
				zap.String("session", data.SessionID),
				zap.Int("completed", data.Progress.CompletedCount()))
			return sm.enter(sm.resumeScene())
		case errors.Is(err, ErrNoSnapshot):
			sm.logger.Debug("[SceneManager] 没有快照，从标题页开始")
		default:
			sm.logger.Warn("[SceneManager] 快照不可用，从标题页开始", zap.Error(err))
		}
	}
	return sm.enter(SceneTitle)
}

func (sm *SceneManager) restore(data *SaveData) {
	sm.state.Restore(data)
	if data.Variant != sm.cfg.Chapter3.Variant {
		// 第三章玩法已切换，旧的章节状态没有意义
		sm.state.Grid = nil
		sm.state.Route = nil
	}
	// 在航段停顿中保存的快照：Leg 已加一但风向还是上一段的
	if nav := sm.state.Navigation; nav != nil && nav.Leg > 0 && !sm.state.Progress.Completed[ChapterNavigation] {
		nav.RollWind(sm.rng)
	}
}

// SnapshotRules 校验快照时使用的章节规则
func (sm *SceneManager) SnapshotRules() SnapshotRules {
	return SnapshotRules{
		Navigation:  sm.navRules,
		ChordTarget: sm.cfg.Chords.Target,
		Route:       sm.routeRules,
	}
}

// resumeScene 快照中的场景，跳过已完成的章节
func (sm *SceneManager) resumeScene() int {
	p := sm.state.Progress
	if !p.Started {
		return SceneTitle
	}
	scene := p.ActiveScene
	for {
		ch, ok := ChapterOfScene(scene)
		if !ok || !p.Completed[ch] {
			return scene
		}
		scene++
	}
}

// Enter 切换到指定场景
//
// 只允许回到标题页或重新进入当前场景；当前章节完成后还可以进入下一场景。
// 其他目标（包括跳过未完成的章节）都是违规。
// 旧场景的 Scope 在新场景挂载之前关闭，旧场景的计时器不会再触发。
func (sm *SceneManager) Enter(scene int) error {
	if scene < 0 || scene >= SceneCount {
		return sm.violation("scene %d out of range", scene)
	}
	if !sm.canEnter(scene) {
		return sm.violation("cannot enter %s from %s",
			SceneName(scene), SceneName(sm.state.Progress.ActiveScene))
	}
	return sm.enter(scene)
}

// canEnter 进入 scene 是否符合章节顺序
func (sm *SceneManager) canEnter(scene int) bool {
	current := sm.state.Progress.ActiveScene
	if scene == SceneTitle || scene == current {
		return true
	}
	if scene != current+1 {
		return false
	}
	ch, ok := ChapterOfScene(current)
	return !ok || sm.state.Progress.Completed[ch]
}

// enter 切换场景，不检查章节顺序
// 调用方（Start、Begin、Restart、切换计时器）自己保证目标合法
func (sm *SceneManager) enter(scene int) error {
	if scene < 0 || scene >= SceneCount {
		return sm.violation("scene %d out of range", scene)
	}

	if sm.scope != nil {
		sm.scope.Close()
		sm.scope = nil
	}
	sm.legPending = false
	sm.highlight = ""

	sm.state.Progress.ActiveScene = scene
	if scene != SceneTitle {
		sm.state.Progress.Started = true
	}
	sm.ensureChapterState(scene)

	scope := newScope(scene)
	sm.scope = scope

	if scene == SceneDance && sm.state.Recall.Phase == puzzle.PhaseShowing {
		sm.replay(0)
	}

	sm.logger.Info("[SceneManager] 进入场景", zap.String("scene", SceneName(scene)))
	sm.presenter.Mount(scene, scope)
	sm.notify()
	sm.persist()
	return nil
}

// ensureChapterState 首次进入章节时创建章节状态，再次进入时保留
func (sm *SceneManager) ensureChapterState(scene int) {
	gs := sm.state
	switch scene {
	case SceneNavigation:
		if gs.Navigation == nil {
			gs.Navigation = puzzle.NewNavigationState(sm.rng)
		}
	case SceneChords:
		if gs.Chords == nil {
			gs.Chords = puzzle.NewChordState()
		}
	case ScenePuzzle:
		if sm.isRoute() {
			if gs.Route == nil {
				gs.Route = puzzle.NewRouteState(sm.routeRules.Origin)
			}
		} else if gs.Grid == nil {
			gs.Grid = puzzle.NewGridState()
		}
	case SceneDance:
		if gs.Recall == nil {
			gs.Recall = puzzle.NewRecallState()
		}
	}
}

// Begin 标题页的开始按钮
func (sm *SceneManager) Begin() error {
	if sm.state.Progress.ActiveScene != SceneTitle {
		return sm.violation("begin outside the title scene")
	}
	sm.state.Progress.Started = true
	return sm.enter(SceneNavigation)
}

// Restart 丢弃所有进度和快照，回到标题页
func (sm *SceneManager) Restart() error {
	if sm.scope != nil {
		sm.scope.Close()
		sm.scope = nil
	}
	sm.state.Reset()
	if err := sm.saves.Clear(); err != nil {
		sm.logger.Warn("[SceneManager] 清除快照失败", zap.Error(err))
	}
	sm.logger.Info("[SceneManager] 重新开始")
	return sm.enter(SceneTitle)
}

// ReportSuccess 章节完成
//
// 标记完成后经过该章节的切换延时进入下一场景。同一章节重复报告是空操作。
func (sm *SceneManager) ReportSuccess(chapter int) error {
	if err := sm.requireActive(chapter); err != nil {
		return err
	}
	if !sm.state.Progress.MarkCompleted(chapter) {
		return nil
	}

	next := SceneOfChapter(chapter) + 1
	sm.logger.Info("[SceneManager] 章节完成",
		zap.String("scene", SceneName(SceneOfChapter(chapter))),
		zap.Int("completed", sm.state.Progress.CompletedCount()))
	sm.notify()
	sm.persist()

	sm.scope.After(timerAdvance, sm.advanceDelay(chapter), func() {
		if err := sm.enter(next); err != nil {
			sm.logger.Error("[SceneManager] 切换场景失败", zap.Error(err))
		}
	})
	return nil
}

// ReportFailure 玩家猜错
//
// 显示一条临时提示，不改变进度。舞步章节还会在短暂停顿后重新回放。
func (sm *SceneManager) ReportFailure(chapter int, v puzzle.Verdict) error {
	if err := sm.requireActive(chapter); err != nil {
		return err
	}

	sm.logger.Debug("[SceneManager] 判定失败",
		zap.String("scene", SceneName(SceneOfChapter(chapter))),
		zap.String("reason", v.Reason),
		zap.String("severity", string(v.Severity)))
	sm.feedback(FeedbackError, sm.failureMessage(chapter, v))

	if chapter == ChapterDance && sm.state.Recall.Phase == puzzle.PhaseShowing {
		sm.scope.Cancel(timerReplay)
		sm.scope.After(timerReplay, sm.cfg.Timing.MissReplay, func() {
			sm.replay(0)
		})
	}
	sm.notify()
	sm.persist()
	return nil
}

func (sm *SceneManager) failureMessage(chapter int, v puzzle.Verdict) string {
	qs := sm.strings
	switch chapter {
	case ChapterNavigation:
		if v.Severity == puzzle.SeverityClose {
			return qs.GetString(StrNavClose)
		}
		return qs.GetString(StrNavFar)
	case ChapterChords:
		if next, ok := sm.state.Chords.Next(sm.cfg.Chords.Target); ok {
			return qs.Format(StrChordsWrong, next)
		}
	case ChapterPuzzle:
		if sm.state.Route != nil {
			switch v.Reason {
			case puzzle.ReasonWrongCost:
				return qs.Format(StrRouteWrongCost, sm.routeRules.Destination, sm.state.Route.Cost, sm.routeRules.TargetCost)
			case puzzle.ReasonAtDestination:
				return qs.Format(StrRouteAtDest, sm.routeRules.Destination)
			}
		}
	case ChapterDance:
		return qs.GetString(StrDanceWrong)
	}
	return v.Reason
}

func (sm *SceneManager) advanceDelay(chapter int) time.Duration {
	t := sm.cfg.Timing
	switch chapter {
	case ChapterNavigation:
		return t.LegAdvance
	case ChapterChords:
		return t.ChordsAdvance
	case ChapterPuzzle:
		return t.PuzzleAdvance
	default:
		return t.DanceAdvance
	}
}

// TrimSail 航海章节：提交风帆角度
//
// 成功后风帆鼓起，停顿 LegAdvance 后开始下一段航程并重新掷出风向；
// 停顿期间的提交返回 ReasonPending。
func (sm *SceneManager) TrimSail(sailDeg int) (puzzle.Verdict, error) {
	if v, ok, err := sm.guard(ChapterNavigation); !ok {
		return v, err
	}
	if sm.legPending {
		return puzzle.Verdict{Outcome: puzzle.Reject, Reason: puzzle.ReasonPending}, nil
	}

	v := puzzle.EvaluateTrim(sm.state.Navigation, sailDeg, sm.navRules)
	switch v.Outcome {
	case puzzle.Complete:
		sm.feedback(FeedbackSuccess, sm.strings.GetString(StrNavArrive))
		return v, sm.ReportSuccess(ChapterNavigation)
	case puzzle.Accept:
		sm.feedback(FeedbackSuccess, sm.strings.GetString(StrNavFill))
		sm.legPending = true
		sm.notify()
		sm.persist()
		sm.scope.After(timerLeg, sm.cfg.Timing.LegAdvance, func() {
			sm.legPending = false
			sm.state.Navigation.RollWind(sm.rng)
			sm.notify()
			sm.persist()
		})
		return v, nil
	default:
		return v, sm.ReportFailure(ChapterNavigation, v)
	}
}

// PlayChord 吉他章节：弹一个和弦
func (sm *SceneManager) PlayChord(symbol string) (puzzle.Verdict, error) {
	if v, ok, err := sm.guard(ChapterChords); !ok {
		return v, err
	}
	if !puzzle.InAlphabet(sm.cfg.Chords.Alphabet, symbol) {
		return rejected(puzzle.ReasonUnknownSymbol), sm.violation("unknown chord %q", symbol)
	}

	v := puzzle.EvaluateChord(sm.state.Chords, symbol, sm.cfg.Chords.Target)
	switch v.Outcome {
	case puzzle.Complete:
		sm.feedback(FeedbackSuccess, sm.strings.GetString(StrChordsDone))
		return v, sm.ReportSuccess(ChapterChords)
	case puzzle.Accept:
		sm.notify()
		sm.persist()
		return v, nil
	default:
		return v, sm.ReportFailure(ChapterChords, v)
	}
}

// ToggleTile 网格章节：翻转一个格子
func (sm *SceneManager) ToggleTile(index int) (puzzle.Verdict, error) {
	if v, ok, err := sm.guard(ChapterPuzzle); !ok {
		return v, err
	}
	if sm.isRoute() {
		return rejected(puzzle.ReasonWrongPhase), sm.violation("toggle tile in route variant")
	}

	v := puzzle.ToggleTile(sm.state.Grid, index, sm.gridTarget)
	if v.Violation() {
		return v, sm.violation("tile index %d out of range", index)
	}
	if v.Completed() {
		sm.feedback(FeedbackSuccess, sm.strings.GetString(StrGridDone))
		return v, sm.ReportSuccess(ChapterPuzzle)
	}
	sm.notify()
	sm.persist()
	return v, nil
}

// Hop 航线章节：移动到相邻城市
func (sm *SceneManager) Hop(node string) (puzzle.Verdict, error) {
	if v, ok, err := sm.guard(ChapterPuzzle); !ok {
		return v, err
	}
	if !sm.isRoute() {
		return rejected(puzzle.ReasonWrongPhase), sm.violation("hop in grid variant")
	}

	v := puzzle.Hop(sm.state.Route, node, sm.routeRules)
	if v.Violation() {
		return v, sm.violation("%s is not adjacent to %s", node, sm.state.Route.Last())
	}
	switch v.Outcome {
	case puzzle.Complete:
		sm.feedback(FeedbackSuccess, sm.strings.Format(StrRouteDone, sm.state.Route.Cost))
		return v, sm.ReportSuccess(ChapterPuzzle)
	case puzzle.Accept:
		sm.notify()
		sm.persist()
		return v, nil
	default:
		return v, sm.ReportFailure(ChapterPuzzle, v)
	}
}

// UndoHop 航线章节：撤销最后一步，位于起点时返回 false
func (sm *SceneManager) UndoHop() (bool, error) {
	if ok, err := sm.requireRoute(); !ok {
		return false, err
	}
	if !puzzle.UndoHop(sm.state.Route, sm.routeRules) {
		return false, nil
	}
	sm.notify()
	sm.persist()
	return true, nil
}

// ResetRoute 航线章节：回到起点
func (sm *SceneManager) ResetRoute() error {
	if ok, err := sm.requireRoute(); !ok {
		return err
	}
	puzzle.ResetRoute(sm.state.Route, sm.routeRules)
	sm.notify()
	sm.persist()
	return nil
}

// requireRoute 航线编辑动作的前置检查，章节完成后编辑是空操作
func (sm *SceneManager) requireRoute() (bool, error) {
	if err := sm.requireActive(ChapterPuzzle); err != nil {
		return false, err
	}
	if !sm.isRoute() {
		return false, sm.violation("route action in grid variant")
	}
	return !sm.state.Progress.Completed[ChapterPuzzle], nil
}

// WatchSequence 舞步章节：生成新序列并开始回放，只能在空闲阶段调用
func (sm *SceneManager) WatchSequence() error {
	if _, ok, err := sm.guard(ChapterDance); !ok {
		return err
	}
	if sm.state.Recall.Phase != puzzle.PhaseIdle {
		return sm.violation("watch requested in %s phase", sm.state.Recall.Phase)
	}

	puzzle.StartWatch(sm.state.Recall, sm.rng, sm.cfg.Dance.Moves, sm.cfg.Dance.Length)
	sm.logger.Debug("[SceneManager] 舞步序列", zap.Strings("sequence", sm.state.Recall.Sequence))
	sm.feedback(FeedbackInfo, sm.strings.GetString(StrDanceWatch))
	sm.replay(0)
	sm.notify()
	sm.persist()
	return nil
}

// EnterMove 舞步章节：输入一个动作，只能在输入阶段调用
func (sm *SceneManager) EnterMove(move string) (puzzle.Verdict, error) {
	if v, ok, err := sm.guard(ChapterDance); !ok {
		return v, err
	}
	if !puzzle.InAlphabet(sm.cfg.Dance.Moves, move) {
		return rejected(puzzle.ReasonUnknownSymbol), sm.violation("unknown move %q", move)
	}

	v := puzzle.EvaluateMove(sm.state.Recall, move)
	if v.Violation() {
		return v, sm.violation("move entered in %s phase", sm.state.Recall.Phase)
	}
	switch v.Outcome {
	case puzzle.Complete:
		sm.feedback(FeedbackSuccess, sm.strings.GetString(StrDanceDone))
		return v, sm.ReportSuccess(ChapterDance)
	case puzzle.Accept:
		sm.notify()
		sm.persist()
		return v, nil
	default:
		return v, sm.ReportFailure(ChapterDance, v)
	}
}

// guard 章节动作的公共前置检查
// ok 为 false 时调用方直接返回判定和错误
func (sm *SceneManager) guard(chapter int) (puzzle.Verdict, bool, error) {
	if err := sm.requireActive(chapter); err != nil {
		return rejected(puzzle.ReasonWrongPhase), false, err
	}
	if sm.state.Progress.Completed[chapter] {
		return rejected(puzzle.ReasonAlreadyComplete), false, nil
	}
	return puzzle.Verdict{}, true, nil
}

func (sm *SceneManager) requireActive(chapter int) error {
	if chapter < 0 || chapter >= ChapterCount {
		return sm.violation("chapter %d out of range", chapter)
	}
	if sm.scope == nil || sm.state.Progress.ActiveScene != SceneOfChapter(chapter) {
		return sm.violation("chapter %s is not active (active scene %s)",
			SceneName(SceneOfChapter(chapter)), SceneName(sm.state.Progress.ActiveScene))
	}
	return nil
}

func (sm *SceneManager) violation(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
	if sm.StrictInvariants {
		panic(err)
	}
	sm.logger.Warn("[SceneManager] 拒绝无效动作", zap.Error(err))
	return err
}

func rejected(reason string) puzzle.Verdict {
	return puzzle.Verdict{Outcome: puzzle.Reject, Reason: reason}
}

func (sm *SceneManager) isRoute() bool {
	return sm.cfg.Chapter3.Variant == config.Chapter3Route
}

func (sm *SceneManager) feedback(kind FeedbackKind, message string) {
	sm.presenter.Feedback(Feedback{
		Scene:   sm.state.Progress.ActiveScene,
		Kind:    kind,
		Message: message,
		Linger:  sm.cfg.Timing.FeedbackLinger,
	})
}

func (sm *SceneManager) notify() {
	sm.presenter.Notify(sm.Snapshot())
}

// persist 保存快照，失败只记录日志
// 进入第一章之前没有值得保存的进度
func (sm *SceneManager) persist() {
	if !sm.state.Progress.Started {
		return
	}
	if err := sm.saves.Save(sm.state, sm.cfg.Chapter3.Variant); err != nil {
		sm.logger.Warn("[SceneManager] 保存快照失败", zap.Error(err))
	}
}

// Update 由游戏主循环每帧调用，deltaTime 单位为秒
func (sm *SceneManager) Update(deltaTime float64) {
	sm.Advance(time.Duration(math.Round(deltaTime * float64(time.Second))))
}

// Advance 推进当前场景的计时器
func (sm *SceneManager) Advance(dt time.Duration) {
	if sm.scope != nil {
		sm.scope.Update(dt)
	}
}

// Snapshot 当前进度的只读快照
func (sm *SceneManager) Snapshot() Snapshot {
	snap := sm.state.Snapshot()
	snap.Variant = sm.cfg.Chapter3.Variant
	snap.Highlight = sm.highlight
	return snap
}

// ActiveScene 当前场景
func (sm *SceneManager) ActiveScene() int {
	return sm.state.Progress.ActiveScene
}

// Progress 当前全局进度
func (sm *SceneManager) Progress() Progress {
	return sm.state.Progress
}

// Config 冒险配置
func (sm *SceneManager) Config() *config.QuestConfig {
	return sm.cfg
}

// Strings 文本字符串表
func (sm *SceneManager) Strings() *QuestStrings {
	return sm.strings
}

// NavigationRules 航海章节规则
func (sm *SceneManager) NavigationRules() puzzle.NavigationRules {
	return sm.navRules
}

// RouteRules 航线章节规则
func (sm *SceneManager) RouteRules() puzzle.RouteRules {
	return sm.routeRules
}

// GridTarget 网格章节目标图案
func (sm *SceneManager) GridTarget() puzzle.Pattern {
	return sm.gridTarget
}

// LegPending 航段之间的停顿中
func (sm *SceneManager) LegPending() bool {
	return sm.legPending
}

// 以下访问器返回章节状态的副本，章节尚未进入时返回零值

func (sm *SceneManager) Navigation() puzzle.NavigationState {
	if sm.state.Navigation == nil {
		return puzzle.NavigationState{}
	}
	return *sm.state.Navigation
}

func (sm *SceneManager) Chords() puzzle.ChordState {
	if sm.state.Chords == nil {
		return puzzle.ChordState{}
	}
	s := *sm.state.Chords
	s.Solved = append([]string(nil), s.Solved...)
	return s
}

func (sm *SceneManager) Grid() puzzle.GridState {
	if sm.state.Grid == nil {
		return puzzle.GridState{}
	}
	return *sm.state.Grid
}

func (sm *SceneManager) Route() puzzle.RouteState {
	if sm.state.Route == nil {
		return puzzle.RouteState{}
	}
	s := *sm.state.Route
	s.Route = append([]string(nil), s.Route...)
	return s
}

func (sm *SceneManager) Recall() puzzle.RecallState {
	if sm.state.Recall == nil {
		return puzzle.RecallState{}
	}
	s := *sm.state.Recall
	s.Sequence = append([]string(nil), s.Sequence...)
	s.Input = append([]string(nil), s.Input...)
	return s
}
