// verify_quest 无界面地走完整个任务，用于验证配置文件可以通关
//
// 用法：
//
//	go run ./cmd/verify_quest --config data/quest.yaml --variant route --seed 42
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/logging"
	"github.com/decker502/cartographer/pkg/puzzle"
)

var (
	configPath = flag.String("config", "data/quest.yaml", "任务配置文件")
	variant    = flag.String("variant", "", "第三章玩法 grid / route（默认使用配置）")
	seed       = flag.Uint64("seed", 1, "随机种子")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// frame 模拟的帧间隔
const frame = 50 * time.Millisecond

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Options{Verbose: *verbose, Disabled: !*verbose})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadQuestConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = *seed
	if *variant != "" {
		cfg.Chapter3.Variant = *variant
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	printRouteSolutions(cfg)

	if err := playThrough(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 通关失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ 任务可以通关")
}

func printRouteSolutions(cfg *config.QuestConfig) {
	rules, err := cfg.RouteRules()
	if err != nil {
		fmt.Printf("航线图无效: %v\n", err)
		return
	}
	solutions := rules.Solutions()
	fmt.Printf("航线 %s → %s，目标航程 %d，共 %d 条解：\n",
		rules.Origin, rules.Destination, rules.TargetCost, len(solutions))
	for _, path := range solutions {
		fmt.Printf("  %s\n", strings.Join(path, " → "))
	}
}

// waitFor 按帧推进直到场景切换到 scene
func waitFor(sm *game.SceneManager, scene int) error {
	for elapsed := time.Duration(0); elapsed < time.Minute; elapsed += frame {
		if sm.ActiveScene() == scene {
			return nil
		}
		sm.Advance(frame)
	}
	return fmt.Errorf("timed out waiting for scene %s (still in %s)",
		game.SceneName(scene), game.SceneName(sm.ActiveScene()))
}

func playThrough(cfg *config.QuestConfig, logger *zap.Logger) error {
	sm, err := game.NewSceneManager(cfg, game.Options{
		Rand:   puzzle.NewRand(cfg.Seed),
		Logger: logger,
		Saves:  game.NewSaveManager(game.NewMemoryStore(), cfg.Persistence.Key, logger),
	})
	if err != nil {
		return err
	}
	sm.StrictInvariants = true
	if err := sm.Start(); err != nil {
		return err
	}

	if err := sm.Begin(); err != nil {
		return err
	}

	// 航海：每段航程按最佳角度调帆
	for !sm.Progress().Completed[game.ChapterNavigation] {
		if sm.LegPending() {
			sm.Advance(frame)
			continue
		}
		nav := sm.Navigation()
		if _, err := sm.TrimSail(puzzle.OptimalSailDeg(nav.WindDeg)); err != nil {
			return err
		}
		fmt.Printf("  航段 %d：风向 %d°\n", nav.Leg+1, nav.WindDeg)
	}
	if err := waitFor(sm, game.SceneChords); err != nil {
		return err
	}

	for _, chord := range cfg.Chords.Target {
		if _, err := sm.PlayChord(chord); err != nil {
			return err
		}
	}
	fmt.Printf("  和弦：%s\n", strings.Join(cfg.Chords.Target, " "))
	if err := waitFor(sm, game.ScenePuzzle); err != nil {
		return err
	}

	if cfg.Chapter3.Variant == config.Chapter3Route {
		solutions := sm.RouteRules().Solutions()
		if len(solutions) == 0 {
			return fmt.Errorf("route has no solution with cost %d", sm.RouteRules().TargetCost)
		}
		for _, node := range solutions[0][1:] {
			if _, err := sm.Hop(node); err != nil {
				return err
			}
		}
		fmt.Printf("  航线：%s\n", strings.Join(solutions[0], " → "))
	} else {
		target := sm.GridTarget()
		for i, lit := range target {
			if !lit {
				continue
			}
			if _, err := sm.ToggleTile(i); err != nil {
				return err
			}
		}
		if !sm.Progress().Completed[game.ChapterPuzzle] {
			// 全灭的目标图案需要翻两次同一格才能触发判定
			sm.ToggleTile(0)
			sm.ToggleTile(0)
		}
		fmt.Printf("  网格：点亮 %d 格\n", target.Lit())
	}
	if err := waitFor(sm, game.SceneDance); err != nil {
		return err
	}

	if err := sm.WatchSequence(); err != nil {
		return err
	}
	for sm.Recall().Phase != puzzle.PhaseInput {
		sm.Advance(frame)
	}
	seq := sm.Recall().Sequence
	for _, move := range seq {
		if _, err := sm.EnterMove(move); err != nil {
			return err
		}
	}
	fmt.Printf("  舞步：%s\n", strings.Join(seq, " "))
	if err := waitFor(sm, game.SceneFinale); err != nil {
		return err
	}

	if n := sm.Progress().CompletedCount(); n != game.ChapterCount {
		return fmt.Errorf("expected %d completed chapters, got %d", game.ChapterCount, n)
	}
	return nil
}
