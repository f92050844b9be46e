//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.cartographer -o build/android/cartographer.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Cartographer.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/decker502/cartographer/pkg/app"
	"github.com/decker502/cartographer/pkg/embedded"
	"github.com/decker502/cartographer/pkg/logging"
)

func init() {
	embedded.Init(dataFS)

	logger, err := logging.New(logging.Options{Verbose: true})
	if err != nil {
		// 没有可用的日志，只能用标准库输出
		log.Fatalf("日志初始化失败: %v", err)
	}

	cfg, err := app.LoadQuestConfig("")
	if err != nil {
		logger.Fatal("[Mobile] 配置加载失败", zap.Error(err))
	}

	gameApp, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("[Mobile] 游戏初始化失败", zap.Error(err))
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
