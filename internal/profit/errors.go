package profit

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrInvalidInput 表示输入参数不满足计算前提。
var ErrInvalidInput = errors.New("invalid trade input")

// InvalidInputError 描述单个非法字段。
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("profit: %s=%v %s", e.Field, e.Value, e.Reason)
}

// Is 使 errors.Is(err, ErrInvalidInput) 成立。
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validate 校验输入，一次性返回全部问题。
func (in TradeInput) Validate() error {
	var err error

	if !isFinite(in.CoinPrice) || in.CoinPrice <= 0 {
		err = multierr.Append(err, &InvalidInputError{Field: "coin_price", Value: in.CoinPrice, Reason: "必须为大于0的有限数"})
	}
	if !isFinite(in.InvestmentAmount) || in.InvestmentAmount <= 0 {
		err = multierr.Append(err, &InvalidInputError{Field: "investment_amount", Value: in.InvestmentAmount, Reason: "必须为大于0的有限数"})
	}
	switch {
	case !isFinite(in.FeePercent) || in.FeePercent < 0:
		err = multierr.Append(err, &InvalidInputError{Field: "fee_percent", Value: in.FeePercent, Reason: "不能为负"})
	case in.FeePercent >= 100:
		// 分母 (1 - fee/100) 为零或为负，保本价无意义
		err = multierr.Append(err, &InvalidInputError{Field: "fee_percent", Value: in.FeePercent, Reason: "必须小于100"})
	}
	if math.IsNaN(in.CurrentPrice) || math.IsInf(in.CurrentPrice, 0) {
		err = multierr.Append(err, &InvalidInputError{Field: "current_price", Value: in.CurrentPrice, Reason: "必须为有限数"})
	}

	return err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
