package game

import (
	"testing"
	"time"

	"github.com/decker502/cartographer/pkg/config"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// seqRand 按顺序返回预设值（对 n 取模）
type seqRand struct {
	values []int
	next   int
}

func (r *seqRand) IntN(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

// recordingPresenter 记录核心发出的所有通知
type recordingPresenter struct {
	events     []string
	snapshots  []Snapshot
	feedback   []Feedback
	highlights []string
	scopes     []*Scope
}

func (p *recordingPresenter) Mount(scene int, scope *Scope) {
	name := SceneName(scene)
	p.events = append(p.events, "mount:"+name)
	p.scopes = append(p.scopes, scope)
	scope.Defer(func() {
		p.events = append(p.events, "teardown:"+name)
	})
}

func (p *recordingPresenter) Notify(s Snapshot) {
	p.snapshots = append(p.snapshots, s)
}

func (p *recordingPresenter) Feedback(fb Feedback) {
	p.feedback = append(p.feedback, fb)
}

func (p *recordingPresenter) Highlight(move string) {
	p.highlights = append(p.highlights, move)
}

func (p *recordingPresenter) lastFeedback() Feedback {
	if len(p.feedback) == 0 {
		return Feedback{}
	}
	return p.feedback[len(p.feedback)-1]
}

// newTestManager 创建使用内存存储、风向固定为 0 的场景控制器
func newTestManager(t *testing.T, mutate func(cfg *config.QuestConfig)) (*SceneManager, *recordingPresenter, *MemoryStore) {
	t.Helper()

	cfg := config.DefaultQuestConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return startTestManager(t, cfg, NewMemoryStore())
}

// newManagerAt 从快照恢复到 scene，之前的章节都已完成
func newManagerAt(t *testing.T, scene int, mutate func(cfg *config.QuestConfig)) (*SceneManager, *recordingPresenter, *MemoryStore) {
	t.Helper()

	cfg := config.DefaultQuestConfig()
	cfg.Persistence.Resume = config.ResumeFurthest
	if mutate != nil {
		mutate(cfg)
	}

	gs := NewGameState()
	gs.Progress = Progress{ActiveScene: scene, Started: true}
	for ch := 0; ch < ChapterCount && SceneOfChapter(ch) < scene; ch++ {
		gs.Progress.MarkCompleted(ch)
	}
	store := NewMemoryStore()
	if err := NewSaveManager(store, cfg.Persistence.Key, nil).Save(gs, cfg.Chapter3.Variant); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sm, p, store := startTestManager(t, cfg, store)
	if sm.ActiveScene() != scene {
		t.Fatalf("Expected to resume at %s, got %s", SceneName(scene), SceneName(sm.ActiveScene()))
	}
	return sm, p, store
}

func startTestManager(t *testing.T, cfg *config.QuestConfig, store *MemoryStore) (*SceneManager, *recordingPresenter, *MemoryStore) {
	t.Helper()

	presenter := &recordingPresenter{}
	sm, err := NewSceneManager(cfg, Options{
		Presenter: presenter,
		Saves:     NewSaveManager(store, cfg.Persistence.Key, nil),
		Rand:      &seqRand{values: []int{0}},
	})
	if err != nil {
		t.Fatalf("NewSceneManager failed: %v", err)
	}
	if err := sm.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return sm, presenter, store
}

// advance 分多帧推进时间，让链式计时器依次触发
func advance(sm *SceneManager, frames int, dt time.Duration) {
	for i := 0; i < frames; i++ {
		sm.Advance(dt)
	}
}
