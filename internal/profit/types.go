package profit

const (
	// MinGainTarget 为最小目标涨幅（百分比）。
	MinGainTarget GainTarget = 1
	// MaxGainTarget 为最大目标涨幅（百分比）。
	MaxGainTarget GainTarget = 5
)

// GainTarget 表示相对保本价上浮的整数百分比。
type GainTarget int

// GainTargets 按升序返回全部目标涨幅。
func GainTargets() []GainTarget {
	targets := make([]GainTarget, 0, MaxGainTarget-MinGainTarget+1)
	for g := MinGainTarget; g <= MaxGainTarget; g++ {
		targets = append(targets, g)
	}
	return targets
}

// LineKind 区分结果行来源。
type LineKind string

const (
	// LineKindCurrent 为按假设卖出价计算的行。
	LineKindCurrent LineKind = "current"
	// LineKindTarget 为按目标涨幅计算的行。
	LineKindTarget LineKind = "target"
)

// TradeInput 为一次计算的输入。
type TradeInput struct {
	CoinPrice        float64 `json:"coin_price"`        // 买入价
	InvestmentAmount float64 `json:"investment_amount"` // 投入资金（不含手续费）
	FeePercent       float64 `json:"fee_percent"`       // 手续费百分比，0.25 表示 0.25%
	CurrentPrice     float64 `json:"current_price"`     // 假设卖出价，<=0 视为未提供
}

// HasCurrentPrice 判断是否提供了有效的假设卖出价。
func (in TradeInput) HasCurrentPrice() bool {
	return in.CurrentPrice > 0
}

// ProfitLine 为单行结果。
type ProfitLine struct {
	Kind       LineKind   `json:"kind"`
	Percentage float64    `json:"percentage"`
	Gain       GainTarget `json:"gain,omitempty"`
	Price      float64    `json:"price"`
	NetProfit  float64    `json:"net_profit"`
}

// TradeSummary 汇总保本价及各卖出价位的净收益。
type TradeSummary struct {
	BreakEvenPrice float64      `json:"break_even_price"`
	Lines          []ProfitLine `json:"lines"`

	Quantity    float64 `json:"quantity"`
	BuyFee      float64 `json:"buy_fee"`
	TotalCost   float64 `json:"total_cost"`
	CostPerUnit float64 `json:"cost_per_unit"`
	FeePercent  float64 `json:"fee_percent"`
}

// CurrentLine 返回按假设卖出价计算的结果行。
func (s TradeSummary) CurrentLine() (ProfitLine, bool) {
	if len(s.Lines) > 0 && s.Lines[0].Kind == LineKindCurrent {
		return s.Lines[0], true
	}
	return ProfitLine{}, false
}

// TargetLines 返回目标涨幅对应的结果行。
func (s TradeSummary) TargetLines() []ProfitLine {
	if _, ok := s.CurrentLine(); ok {
		return s.Lines[1:]
	}
	return s.Lines
}
