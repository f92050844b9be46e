package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decker502/cartographer/pkg/app"
	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/embedded"
	"github.com/decker502/cartographer/pkg/logging"
	"github.com/decker502/cartographer/pkg/tui"
)

var (
	configPath string
	verbose    bool
	seed       uint64
	chapter3   string
	resume     string
	store      string
	useTUI     bool
	logFile    string

	logger *zap.Logger
)

// rootCmd 启动任务：默认打开窗口，--tui 时在终端中运行
var rootCmd = &cobra.Command{
	Use:           "cartographer",
	Short:         "The Cartographer of Winds: a five-scene birthday micro-quest",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		opts := logging.Options{Verbose: verbose}
		if logFile != "" {
			opts.OutputPaths = []string{logFile}
		} else if useTUI {
			// 终端界面占用了 stderr
			opts.Disabled = true
		}

		var err error
		logger, err = logging.New(opts)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Quest config YAML (default: embedded data/quest.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for wind and dance sequences (0: time based)")
	rootCmd.Flags().StringVar(&chapter3, "chapter3", "", "Chapter 3 variant: grid or route")
	rootCmd.Flags().StringVar(&resume, "resume", "", "Resume policy: fresh or furthest")
	rootCmd.Flags().StringVar(&store, "store", "", "Snapshot store: gdata, sqlite, memory or none")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "Run in the terminal instead of a window")
}

// loadConfig 读取配置并应用命令行覆盖
func loadConfig(cmd *cobra.Command) (*config.QuestConfig, error) {
	cfg, err := app.LoadQuestConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if chapter3 != "" {
		cfg.Chapter3.Variant = chapter3
	}
	if resume != "" {
		cfg.Persistence.Resume = resume
	}
	if store != "" {
		cfg.Persistence.Store = store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	embedded.Init(dataFS)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if useTUI {
		session, err := app.NewSession(cfg, logger)
		if err != nil {
			return err
		}
		defer session.Close()
		return tui.Run(session.Manager, logger)
	}

	gameApp, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("The Cartographer of Winds")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("[Main] 启动窗口",
		zap.Int("width", config.GameWindowWidth),
		zap.Int("height", config.GameWindowHeight))

	if err := ebiten.RunGame(gameApp); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
