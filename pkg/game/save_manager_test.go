package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/puzzle"
	"github.com/google/go-cmp/cmp"
)

func newTestState() *GameState {
	gs := NewGameState()
	gs.Progress = Progress{ActiveScene: SceneChords, Started: true}
	gs.Progress.MarkCompleted(ChapterNavigation)
	gs.Navigation = &puzzle.NavigationState{Leg: 3, WindDeg: 270}
	gs.Chords = &puzzle.ChordState{SolvedCount: 2, Solved: []string{"A", "G"}}
	return gs
}

// defaultSnapshotRules 默认配置下的快照校验规则
func defaultSnapshotRules(t *testing.T) SnapshotRules {
	t.Helper()
	cfg := config.DefaultQuestConfig()
	route, err := cfg.RouteRules()
	if err != nil {
		t.Fatalf("RouteRules failed: %v", err)
	}
	return SnapshotRules{
		Navigation:  cfg.Navigation,
		ChordTarget: cfg.Chords.Target,
		Route:       route,
	}
}

func TestSaveManagerRoundTrip(t *testing.T) {
	sm := NewSaveManager(NewMemoryStore(), config.DefaultSnapshotKey, nil)
	savedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return savedAt }

	gs := newTestState()
	if err := sm.Save(gs, config.Chapter3Grid); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := sm.Load(defaultSnapshotRules(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data.SessionID != sm.SessionID() {
		t.Errorf("Expected session %q, got %q", sm.SessionID(), data.SessionID)
	}
	if !data.SavedAt.Equal(savedAt) {
		t.Errorf("Expected savedAt %v, got %v", savedAt, data.SavedAt)
	}
	if data.Variant != config.Chapter3Grid {
		t.Errorf("Expected variant grid, got %q", data.Variant)
	}

	restored := NewGameState()
	restored.Restore(data)
	if diff := cmp.Diff(gs, restored); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveManagerSQLite(t *testing.T) {
	store, err := OpenSQLiteStore("")
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sm := NewSaveManager(store, config.DefaultSnapshotKey, nil)
	gs := newTestState()
	gs.Recall = &puzzle.RecallState{
		Sequence: []string{"Left", "Turn"},
		Input:    []string{"Left"},
		Phase:    puzzle.PhaseInput,
	}
	if err := sm.Save(gs, config.Chapter3Route); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := sm.Load(defaultSnapshotRules(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(gs.Recall, data.Recall); diff != "" {
		t.Errorf("recall mismatch (-want +got):\n%s", diff)
	}

	if err := sm.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := sm.Load(defaultSnapshotRules(t)); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot after Clear, got %v", err)
	}
}

func TestSaveManagerDegraded(t *testing.T) {
	sm := NewSaveManager(nil, config.DefaultSnapshotKey, nil)

	if sm.Enabled() {
		t.Error("Expected save manager without store to be disabled")
	}
	if err := sm.Save(newTestState(), config.Chapter3Grid); err != nil {
		t.Errorf("Save in degraded mode should be a no-op, got %v", err)
	}
	if _, err := sm.Load(defaultSnapshotRules(t)); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}
	if err := sm.Clear(); err != nil {
		t.Errorf("Clear in degraded mode should be a no-op, got %v", err)
	}
}

func TestSaveManagerRejectsCorruptSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not yaml",
			content: "progress: [oops",
			wantErr: "failed to parse snapshot",
		},
		{
			name:    "scene out of range",
			content: "progress:\n  activeScene: 9\n",
			wantErr: "activeScene out of range",
		},
		{
			name:    "wind out of range",
			content: "navigation:\n  leg: 1\n  windDeg: 400\n",
			wantErr: "navigation state out of range",
		},
		{
			name:    "chord count mismatch",
			content: "chords:\n  solvedCount: 3\n  solved: [A]\n",
			wantErr: "solvedCount",
		},
		{
			name:    "empty route",
			content: "route:\n  route: []\n  cost: 0\n",
			wantErr: "empty route",
		},
		{
			name:    "unknown phase",
			content: "recall:\n  sequence: [Left]\n  phase: dancing\n",
			wantErr: "unknown phase",
		},
		{
			name:    "input not a prefix",
			content: "recall:\n  sequence: [Left, Turn]\n  input: [Turn]\n  phase: input\n",
			wantErr: "not a prefix",
		},
		{
			name:    "empty sequence in input phase",
			content: "recall:\n  sequence: []\n  phase: input\n",
			wantErr: "empty sequence",
		},
		{
			name:    "empty sequence in showing phase",
			content: "recall:\n  phase: showing\n",
			wantErr: "empty sequence",
		},
		{
			name:    "all legs sailed but chapter open",
			content: "navigation:\n  leg: 3\n  windDeg: 90\n",
			wantErr: "chapter not completed",
		},
		{
			name:    "leg beyond the last",
			content: "progress:\n  activeScene: 2\n  started: true\n  completed: [true, false, false, false, false]\n" +
				"navigation:\n  leg: 4\n  windDeg: 90\n",
			wantErr: "exceeds 3 legs",
		},
		{
			name:    "chords not a prefix of the target",
			content: "chords:\n  solvedCount: 2\n  solved: [G, A]\n",
			wantErr: "not a prefix of the target",
		},
		{
			name:    "chords beyond the target",
			content: "chords:\n  solvedCount: 5\n  solved: [A, G, E, D, A]\n",
			wantErr: "exceeds target length",
		},
		{
			name:    "route not from origin",
			content: "route:\n  route: [MOS]\n  cost: 31\n",
			wantErr: "starts at MOS",
		},
		{
			name:    "route through missing edge",
			content: "route:\n  route: [RIO, MOS]\n  cost: 0\n",
			wantErr: "MOS is not adjacent to RIO",
		},
		{
			name:    "route cost mismatch",
			content: "route:\n  route: [RIO, DKR]\n  cost: 31\n",
			wantErr: "cost 31 does not match route weight 10",
		},
		{
			name:    "route past destination",
			content: "route:\n  route: [RIO, DKR, LIS, MOS, ZRH, MOS]\n  cost: 49\n",
			wantErr: "continues past ZRH",
		},
		{
			name:    "scene ahead of progress",
			content: "progress:\n  activeScene: 5\n  started: true\n",
			wantErr: "ahead of",
		},
		{
			name:    "chapters completed out of order",
			content: "progress:\n  activeScene: 1\n  started: true\n  completed: [false, true, false, false, false]\n",
			wantErr: "completed before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if err := store.Save(config.DefaultSnapshotKey, []byte(tt.content)); err != nil {
				t.Fatal(err)
			}
			sm := NewSaveManager(store, config.DefaultSnapshotKey, nil)

			_, err := sm.Load(defaultSnapshotRules(t))
			if err == nil {
				t.Fatal("Expected error for corrupt snapshot")
			}
			if errors.Is(err, ErrNoSnapshot) {
				t.Errorf("corrupt snapshot reported as missing: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveManagerAcceptsFinishedQuest(t *testing.T) {
	store := NewMemoryStore()
	content := "progress:\n  activeScene: 5\n  started: true\n  completed: [true, true, true, true, false]\n" +
		"navigation:\n  leg: 3\n  windDeg: 90\n" +
		"chords:\n  solvedCount: 4\n  solved: [A, G, E, D]\n" +
		"route:\n  route: [RIO, DKR, LIS, MOS, ZRH]\n  cost: 40\n"
	if err := store.Save(config.DefaultSnapshotKey, []byte(content)); err != nil {
		t.Fatal(err)
	}
	sm := NewSaveManager(store, config.DefaultSnapshotKey, nil)

	data, err := sm.Load(defaultSnapshotRules(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data.Progress.ActiveScene != SceneFinale {
		t.Errorf("Expected finale, got %d", data.Progress.ActiveScene)
	}
}

func TestSaveManagerSessionIDsDiffer(t *testing.T) {
	a := NewSaveManager(nil, config.DefaultSnapshotKey, nil)
	b := NewSaveManager(nil, config.DefaultSnapshotKey, nil)
	if a.SessionID() == "" || a.SessionID() == b.SessionID() {
		t.Errorf("Expected distinct non-empty session IDs, got %q and %q", a.SessionID(), b.SessionID())
	}
}
