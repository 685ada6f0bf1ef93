package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trade-helper/internal/config"
	"trade-helper/internal/present"
	"trade-helper/internal/profit"
	"trade-helper/internal/session"
)

// App 聚合核心依赖并驱动输入处理流程。
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *session.Session
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	presenter, err := present.New(cfg.Present)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(cfg.Fee.Percent(), presenter, logger.Named("session"))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		session: sess,
	}, nil
}

// Once 对单组输入计算并输出结果。
func (a *App) Once(raw session.RawInput, out io.Writer) error {
	outcome, err := a.session.Update(raw)
	if err != nil {
		return err
	}
	if outcome.Status == session.StatusIncomplete {
		return fmt.Errorf("app: 买入价与投入金额必须大于0: %w", profit.ErrInvalidInput)
	}
	return present.Write(out, outcome.View)
}

// Run 逐行读取输入，每当取值变化时输出新的计算结果，直到输入结束或 ctx 取消。
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	a.logger.Info("交易助手已启动",
		zap.String("environment", a.cfg.App.Environment),
		zap.Float64("fee_percent", a.cfg.Fee.Percent()),
		zap.String("fee_side", a.cfg.Fee.Side),
		zap.String("variant", a.cfg.Present.Variant),
	)

	lines := make(chan string)
	readErr := make(chan error, 1)

	// 读取协程可能阻塞在终端输入上，ctx 取消后不再等待它
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	// 处理协程总会被等待，Run 返回后不再写 out
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					select {
					case err := <-readErr:
						if err != nil {
							return fmt.Errorf("app: 读取输入失败: %w", err)
						}
					default:
					}
					return nil
				}
				if err := a.handleLine(line, out); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("app: 异常退出: %w", err)
		}
		a.logger.Info("收到退出信号，交易助手退出")
		return nil
	}

	a.logger.Info("输入结束，交易助手退出")
	return nil
}

// 解析或校验失败只记录日志，写出失败才中止
func (a *App) handleLine(line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if strings.EqualFold(line, "reset") {
		a.session.Reset()
		a.logger.Debug("已重置输入状态")
		return nil
	}

	raw, err := session.ParseLine(line)
	if err != nil {
		a.logger.Warn("忽略无法解析的输入", zap.String("line", line), zap.Error(err))
		return nil
	}

	outcome, err := a.session.Update(raw)
	if err != nil {
		a.logger.Warn("忽略非法输入", zap.String("line", line), zap.Error(err))
		return nil
	}

	switch outcome.Status {
	case session.StatusIncomplete:
		a.logger.Debug("输入不完整，跳过计算", zap.String("line", line))
		return nil
	case session.StatusUnchanged:
		return nil
	}

	if err := present.Write(out, outcome.View); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("app: 写出结果失败: %w", err)
	}
	return nil
}
