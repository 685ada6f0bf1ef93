package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"trade-helper/internal/present"
	"trade-helper/internal/profit"
)

// StatusType 描述一次输入更新的处理结果。
type StatusType string

const (
	StatusUpdated    StatusType = "updated"
	StatusUnchanged  StatusType = "unchanged"
	StatusIncomplete StatusType = "incomplete"
)

// Outcome 为 Update 的返回值。
type Outcome struct {
	Status  StatusType
	Input   profit.TradeInput
	Summary profit.TradeSummary
	View    present.View
}

// Session 跟踪交易表单的最新取值，仅在取值变化时重新计算。
type Session struct {
	feePercent float64
	presenter  present.Presenter
	logger     *zap.Logger

	mu      sync.Mutex
	last    profit.TradeInput
	hasLast bool
}

// New 创建 Session。feePercent 由调用方显式提供。
func New(feePercent float64, presenter present.Presenter, logger *zap.Logger) (*Session, error) {
	if presenter == nil {
		return nil, fmt.Errorf("session: presenter 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		feePercent: feePercent,
		presenter:  presenter,
		logger:     logger,
	}, nil
}

// Update 处理一次表单变更。
func (s *Session) Update(raw RawInput) (Outcome, error) {
	in, err := s.toInput(raw)
	if err != nil {
		return Outcome{}, err
	}

	// 价格或金额尚未填写时不计算
	if in.CoinPrice <= 0 || in.InvestmentAmount <= 0 {
		return Outcome{Status: StatusIncomplete, Input: in}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasLast && s.last == in {
		return Outcome{Status: StatusUnchanged, Input: in}, nil
	}

	summary, err := profit.Compute(in)
	if err != nil {
		return Outcome{}, fmt.Errorf("session: 计算失败: %w", err)
	}

	s.last = in
	s.hasLast = true

	s.logger.Debug("交易摘要已更新",
		zap.Float64("coin_price", in.CoinPrice),
		zap.Float64("investment_amount", in.InvestmentAmount),
		zap.Float64("current_price", in.CurrentPrice),
		zap.Float64("fee_percent", in.FeePercent),
		zap.Float64("break_even_price", summary.BreakEvenPrice),
	)

	return Outcome{
		Status:  StatusUpdated,
		Input:   in,
		Summary: summary,
		View:    s.presenter.Render(summary),
	}, nil
}

// Reset 清除已记录的输入，例如页面切换之后。
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = profit.TradeInput{}
	s.hasLast = false
}

func (s *Session) toInput(raw RawInput) (profit.TradeInput, error) {
	price, err := parseNumber("price", raw.Price)
	if err != nil {
		return profit.TradeInput{}, err
	}
	amount, err := parseNumber("amount", raw.Amount)
	if err != nil {
		return profit.TradeInput{}, err
	}
	current, err := parseNumber("current", raw.Current)
	if err != nil {
		return profit.TradeInput{}, err
	}

	// <=0 的假设卖出价视为未提供，统一为 0 便于比较
	if current < 0 {
		current = 0
	}

	return profit.TradeInput{
		CoinPrice:        price,
		InvestmentAmount: amount,
		FeePercent:       s.feePercent,
		CurrentPrice:     current,
	}, nil
}
