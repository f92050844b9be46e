package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultQuestConfig 测试默认配置与参考数据一致
func TestDefaultQuestConfig(t *testing.T) {
	cfg := DefaultQuestConfig()

	if cfg.Navigation.Tolerance != 20 {
		t.Errorf("Tolerance: got %d, want 20", cfg.Navigation.Tolerance)
	}
	if cfg.Navigation.CloseThreshold != 45 {
		t.Errorf("CloseThreshold: got %d, want 45", cfg.Navigation.CloseThreshold)
	}
	if cfg.Navigation.Legs != 3 {
		t.Errorf("Legs: got %d, want 3", cfg.Navigation.Legs)
	}
	if cfg.Navigation.TwoTack {
		t.Error("TwoTack should be off by default")
	}
	if got := len(cfg.Chords.Target); got != 4 {
		t.Errorf("chord target length: got %d, want 4", got)
	}
	if cfg.Chapter3.Variant != Chapter3Grid {
		t.Errorf("Variant: got %q, want %q", cfg.Chapter3.Variant, Chapter3Grid)
	}
	if cfg.Dance.Length != 4 {
		t.Errorf("Dance.Length: got %d, want 4", cfg.Dance.Length)
	}
	if cfg.Timing.ChordsAdvance != 8*time.Second {
		t.Errorf("ChordsAdvance: got %v, want 8s", cfg.Timing.ChordsAdvance)
	}
	if cfg.Persistence.Key != "cartographer_state" {
		t.Errorf("Key: got %q", cfg.Persistence.Key)
	}
	if cfg.Persistence.Resume != ResumeFresh {
		t.Errorf("Resume: got %q, want %q", cfg.Persistence.Resume, ResumeFresh)
	}

	if err := validateQuestConfig(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	rules, err := cfg.RouteRules()
	if err != nil {
		t.Fatalf("RouteRules() error: %v", err)
	}
	if rules.Origin != "RIO" || rules.Destination != "ZRH" || rules.TargetCost != 40 {
		t.Errorf("unexpected route rules: %+v", rules)
	}
	if cfg.GridTarget().Lit() != 14 {
		t.Errorf("GridTarget lit cells: got %d, want 14", cfg.GridTarget().Lit())
	}
}

// TestLoadQuestConfig 测试从文件加载配置
func TestLoadQuestConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "quest.yaml")

		validYAML := `title: "Test Quest"
seed: 42
navigation:
  tolerance: 15
  twoTack: true
chapter3:
  variant: route
  route:
    origin: A
    destination: C
    targetCost: 5
    edges:
      - {from: A, to: B, weight: 2}
      - {from: B, to: C, weight: 3}
timing:
  chordsAdvance: 2s
  missReplay: 500ms
persistence:
  store: memory
  resume: furthest
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadQuestConfig(testFile)
		if err != nil {
			t.Fatalf("LoadQuestConfig() failed: %v", err)
		}

		if cfg.Title != "Test Quest" {
			t.Errorf("Title: got %q", cfg.Title)
		}
		if cfg.Seed != 42 {
			t.Errorf("Seed: got %d, want 42", cfg.Seed)
		}
		if cfg.Navigation.Tolerance != 15 || !cfg.Navigation.TwoTack {
			t.Errorf("navigation not loaded: %+v", cfg.Navigation)
		}
		// 未配置的字段使用默认值
		if cfg.Navigation.CloseThreshold != 45 {
			t.Errorf("CloseThreshold default: got %d, want 45", cfg.Navigation.CloseThreshold)
		}
		if cfg.Timing.ChordsAdvance != 2*time.Second {
			t.Errorf("ChordsAdvance: got %v, want 2s", cfg.Timing.ChordsAdvance)
		}
		if cfg.Timing.MissReplay != 500*time.Millisecond {
			t.Errorf("MissReplay: got %v, want 500ms", cfg.Timing.MissReplay)
		}
		if cfg.Timing.LegAdvance != 1400*time.Millisecond {
			t.Errorf("LegAdvance default: got %v", cfg.Timing.LegAdvance)
		}

		rules, err := cfg.RouteRules()
		if err != nil {
			t.Fatalf("RouteRules() error: %v", err)
		}
		if sols := rules.Solutions(); len(sols) != 1 {
			t.Errorf("expected 1 solution, got %v", sols)
		}
		if cfg.Persistence.Store != StoreMemory || cfg.Persistence.Resume != ResumeFurthest {
			t.Errorf("persistence not loaded: %+v", cfg.Persistence)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadQuestConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

// TestParseQuestConfigInvalid 测试非法配置被拒绝
func TestParseQuestConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "navigation: [1, 2"},
		{"unknown variant", "chapter3:\n  variant: maze\n"},
		{"tolerance too large", "navigation:\n  tolerance: 200\n  closeThreshold: 250\n"},
		{"close below tolerance", "navigation:\n  tolerance: 30\n  closeThreshold: 10\n"},
		{"chord not in alphabet", "chords:\n  target: [A, H]\n"},
		{"bad grid row", "chapter3:\n  grid:\n    target: ['#####']\n"},
		{"origin not in graph", "chapter3:\n  route:\n    origin: XXX\n"},
		{"origin is destination", "chapter3:\n  route:\n    origin: ZRH\n    destination: ZRH\n"},
		{"non positive weight", "chapter3:\n  route:\n    edges:\n      - {from: RIO, to: ZRH, weight: -1}\n"},
		{"unknown store", "persistence:\n  store: redis\n"},
		{"unknown resume", "persistence:\n  resume: latest\n"},
		{"negative legs", "navigation:\n  legs: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}

	_, err := ParseQuestConfig([]byte("chapter3:\n  variant: maze\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

// TestValidateAfterOverride 测试命令行覆盖后的校验
func TestValidateAfterOverride(t *testing.T) {
	cfg := DefaultQuestConfig()
	cfg.Chapter3.Variant = Chapter3Route
	cfg.Persistence.Resume = ResumeFurthest
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	cfg.Persistence.Store = "redis"
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestRouteRulesRejectsSameEndpoints 测试起点和终点相同的航线
func TestRouteRulesRejectsSameEndpoints(t *testing.T) {
	cfg := DefaultQuestConfig()
	cfg.Chapter3.Route.Destination = cfg.Chapter3.Route.Origin

	_, err := cfg.RouteRules()
	if err == nil || !strings.Contains(err.Error(), "origin and destination") {
		t.Fatalf("Expected origin/destination error, got %v", err)
	}

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
