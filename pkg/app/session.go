package app

import (
	"fmt"
	"io"
	"time"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/embedded"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/decker502/cartographer/pkg/puzzle"
	"go.uber.org/zap"
)

// 嵌入资源路径
const (
	QuestConfigPath  = "data/quest.yaml"
	QuestStringsPath = "data/strings.txt"
)

// LoadQuestConfig 加载冒险配置
//
// path 为空时读取嵌入的默认配置；embedded 未初始化时使用内置默认值。
func LoadQuestConfig(path string) (*config.QuestConfig, error) {
	if path != "" {
		return config.LoadQuestConfig(path)
	}
	if !embedded.IsInitialized() {
		return config.DefaultQuestConfig(), nil
	}
	data, err := embedded.ReadFile(QuestConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded quest config: %w", err)
	}
	return config.ParseQuestConfig(data)
}

// Session 一次运行所需的核心对象，桌面端、移动端和终端界面共用
type Session struct {
	Config  *config.QuestConfig
	Manager *game.SceneManager
	Saves   *game.SaveManager
	Logger  *zap.Logger

	closer io.Closer
}

// NewSession 按配置创建存储、快照管理器和场景控制器
//
// 存储打开失败时记录警告并以无持久化方式继续。
// 返回的 Session 尚未 Start，调用方应先设置展示层。
func NewSession(cfg *config.QuestConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, closer := openStore(cfg.Persistence, logger)
	saves := game.NewSaveManager(store, cfg.Persistence.Key, logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	strings := game.DefaultQuestStrings()
	if embedded.IsInitialized() {
		loaded, err := game.LoadQuestStrings(QuestStringsPath)
		if err != nil {
			logger.Warn("[App] 文本资源加载失败，使用内置文本", zap.Error(err))
		} else {
			strings = loaded
		}
	}

	manager, err := game.NewSceneManager(cfg, game.Options{
		Saves:   saves,
		Rand:    puzzle.NewRand(seed),
		Logger:  logger,
		Strings: strings,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	logger.Info("[App] 会话已创建",
		zap.String("session", saves.SessionID()),
		zap.String("store", cfg.Persistence.Store),
		zap.Bool("persistent", saves.Enabled()),
		zap.String("chapter3", cfg.Chapter3.Variant),
		zap.String("resume", cfg.Persistence.Resume),
		zap.Uint64("seed", seed))

	return &Session{
		Config:  cfg,
		Manager: manager,
		Saves:   saves,
		Logger:  logger,
		closer:  closer,
	}, nil
}

// Close 释放存储连接
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// openStore 打开配置指定的存储，失败时返回 nil（降级模式）
func openStore(p config.PersistenceConfig, logger *zap.Logger) (game.Store, io.Closer) {
	switch p.Store {
	case config.StoreGdata:
		store, err := game.OpenGdataStore(p.AppName)
		if err != nil {
			logger.Warn("[App] gdata 不可用，快照将不会保存", zap.Error(err))
			return nil, nil
		}
		return store, nil
	case config.StoreSQLite:
		store, err := game.OpenSQLiteStore(p.SQLitePath)
		if err != nil {
			logger.Warn("[App] SQLite 不可用，快照将不会保存", zap.Error(err))
			return nil, nil
		}
		return store, store
	case config.StoreMemory:
		return game.NewMemoryStore(), nil
	default:
		return nil, nil
	}
}
