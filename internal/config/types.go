package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
)

const (
	FeeSideMaker = "maker"
	FeeSideTaker = "taker"
)

// Config 聚合了系统运行所需的全部配置项。
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Fee     FeeConfig     `mapstructure:"fee"`
	Present PresentConfig `mapstructure:"present"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// FeeConfig 描述账户当前费率档位，百分比表示。
type FeeConfig struct {
	MakerPercent float64 `mapstructure:"maker_percent"`
	TakerPercent float64 `mapstructure:"taker_percent"`
	Side         string  `mapstructure:"side"`
}

// Percent 返回按下单方式选取的费率。
func (f FeeConfig) Percent() float64 {
	if strings.EqualFold(strings.TrimSpace(f.Side), FeeSideTaker) {
		return f.TakerPercent
	}
	return f.MakerPercent
}

// PresentConfig 控制结果展示格式。
type PresentConfig struct {
	Variant     string `mapstructure:"variant"` // rows | text
	Locale      string `mapstructure:"locale"`
	PriceDigits int    `mapstructure:"price_digits"`
	NetDigits   int    `mapstructure:"net_digits"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate 对配置进行基本校验。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if c.Fee.MakerPercent < 0 || c.Fee.MakerPercent >= 100 {
		err = multierr.Append(err, errors.New("fee.maker_percent 必须位于[0,100)"))
	}
	if c.Fee.TakerPercent < 0 || c.Fee.TakerPercent >= 100 {
		err = multierr.Append(err, errors.New("fee.taker_percent 必须位于[0,100)"))
	}
	switch strings.ToLower(strings.TrimSpace(c.Fee.Side)) {
	case FeeSideMaker, FeeSideTaker:
	default:
		err = multierr.Append(err, fmt.Errorf("fee.side 取值非法: %q", c.Fee.Side))
	}
	switch strings.ToLower(strings.TrimSpace(c.Present.Variant)) {
	case "rows", "text":
	default:
		err = multierr.Append(err, fmt.Errorf("present.variant 取值非法: %q", c.Present.Variant))
	}
	if _, parseErr := language.Parse(c.Present.Locale); parseErr != nil {
		err = multierr.Append(err, fmt.Errorf("present.locale 无法解析: %w", parseErr))
	}
	if c.Present.PriceDigits < 0 || c.Present.PriceDigits > 12 {
		err = multierr.Append(err, errors.New("present.price_digits 必须位于[0,12]"))
	}
	if c.Present.NetDigits < 0 || c.Present.NetDigits > 12 {
		err = multierr.Append(err, errors.New("present.net_digits 必须位于[0,12]"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
