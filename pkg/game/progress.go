package game

// 场景索引：0 标题页，1..4 四个谜题章节，5 终章
const (
	SceneTitle = iota
	SceneNavigation
	SceneChords
	ScenePuzzle
	SceneDance
	SceneFinale
	SceneCount
)

// 章节索引（Progress.Completed 的下标）
const (
	ChapterNavigation = iota
	ChapterChords
	ChapterPuzzle
	ChapterDance
	ChapterCount
)

// ProgressSlots Completed 的长度，最后一位保留不用
const ProgressSlots = 5

var sceneNames = [SceneCount]string{"title", "navigation", "chords", "puzzle", "dance", "finale"}

// SceneName 返回场景名称，用于日志
func SceneName(scene int) string {
	if scene < 0 || scene >= SceneCount {
		return "unknown"
	}
	return sceneNames[scene]
}

// SceneOfChapter 章节所在的场景
func SceneOfChapter(chapter int) int {
	return chapter + 1
}

// ChapterOfScene 场景对应的章节，标题页和终章没有章节
func ChapterOfScene(scene int) (int, bool) {
	if scene < SceneNavigation || scene > SceneDance {
		return 0, false
	}
	return scene - 1, true
}

// Progress 全局进度，跨场景保留
type Progress struct {
	ActiveScene int                 `yaml:"activeScene"`
	Completed   [ProgressSlots]bool `yaml:"completed"`
	Started     bool                `yaml:"started"`
}

// MarkCompleted 标记章节完成，已完成时返回 false
func (p *Progress) MarkCompleted(chapter int) bool {
	if p.Completed[chapter] {
		return false
	}
	p.Completed[chapter] = true
	return true
}

// CompletedCount 已完成的章节数
func (p Progress) CompletedCount() int {
	n := 0
	for _, done := range p.Completed {
		if done {
			n++
		}
	}
	return n
}

// Snapshot 推送给展示层的只读进度快照
type Snapshot struct {
	ActiveScene int
	Completed   [ProgressSlots]bool
	Started     bool
	Variant     string // 第三章玩法
	Highlight   string // 舞步回放中当前高亮的动作
}

// Dot 进度指示器中的一个圆点
type Dot struct {
	Done    bool
	Current bool
}

// Indicator 计算五个进度圆点（对应场景 1..5）
func (s Snapshot) Indicator() [ProgressSlots]Dot {
	var dots [ProgressSlots]Dot
	for i := range dots {
		dots[i] = Dot{
			Done:    s.Completed[i],
			Current: s.ActiveScene == i+1,
		}
	}
	return dots
}
