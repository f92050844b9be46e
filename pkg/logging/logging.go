// Package logging 构建全局使用的 zap 日志
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Verbose bool // 输出 Debug 级别日志
	// OutputPaths 日志输出位置，为空时写到 stderr。
	// 终端界面模式下 stderr 被界面占用，应指定文件。
	OutputPaths []string
	Disabled    bool // 丢弃所有日志
}

// New 按选项创建 logger
func New(opts Options) (*zap.Logger, error) {
	if opts.Disabled {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
		config.ErrorOutputPaths = opts.OutputPaths
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
