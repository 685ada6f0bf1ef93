package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"trade-helper/internal/app"
	"trade-helper/internal/config"
	"trade-helper/internal/log"
	"trade-helper/internal/session"
)

func main() {
	var (
		configPath string
		price      string
		amount     string
		current    string
		fee        float64
	)
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.StringVar(&price, "price", "", "买入价；为空时从标准输入逐行读取 \"price amount [current]\"")
	flag.StringVar(&amount, "amount", "", "投入金额")
	flag.StringVar(&current, "current", "", "假设卖出价，可选")
	flag.Float64Var(&fee, "fee", -1, "手续费百分比，覆盖配置中的费率")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if fee >= 0 {
		cfg.Fee.MakerPercent = fee
		cfg.Fee.TakerPercent = fee
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "手续费参数非法: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	helper, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("初始化失败", zap.Error(err))
		os.Exit(1)
	}

	if price != "" {
		raw := session.RawInput{Price: price, Amount: amount, Current: current}
		if err := helper.Once(raw, os.Stdout); err != nil {
			logger.Error("计算失败", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := helper.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("运行异常", zap.Error(err))
		os.Exit(1)
	}
}
