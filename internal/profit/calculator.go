package profit

import "fmt"

// Compute 根据买入价、投入资金与手续费计算保本价及各目标价位的净收益。
// 买入与卖出均按同一费率收取手续费。
func Compute(in TradeInput) (TradeSummary, error) {
	if err := in.Validate(); err != nil {
		return TradeSummary{}, err
	}

	feeRate := in.FeePercent / 100

	quantity := in.InvestmentAmount / in.CoinPrice
	buyFee := in.InvestmentAmount * feeRate
	totalCost := in.InvestmentAmount + buyFee
	// 保持 cost/quantity 的计算顺序，与展示端的浮点结果一致
	costPerUnit := totalCost / quantity

	breakEven := costPerUnit / (1 - feeRate)

	targets := GainTargets()
	lines := make([]ProfitLine, 0, len(targets)+1)

	if in.HasCurrentPrice() {
		profit := netProfitAt(in.CurrentPrice, quantity, feeRate, totalCost)
		lines = append(lines, ProfitLine{
			Kind:       LineKindCurrent,
			Percentage: (profit / totalCost) * 100,
			Price:      in.CurrentPrice,
			NetProfit:  profit,
		})
	}

	for _, g := range targets {
		targetPrice := breakEven * (1 + float64(g)/100)
		lines = append(lines, ProfitLine{
			Kind:       LineKindTarget,
			Percentage: float64(g),
			Gain:       g,
			Price:      targetPrice,
			NetProfit:  netProfitAt(targetPrice, quantity, feeRate, totalCost),
		})
	}

	if err := checkFinite(in, quantity, totalCost, breakEven, lines); err != nil {
		return TradeSummary{}, err
	}

	return TradeSummary{
		BreakEvenPrice: breakEven,
		Lines:          lines,
		Quantity:       quantity,
		BuyFee:         buyFee,
		TotalCost:      totalCost,
		CostPerUnit:    costPerUnit,
		FeePercent:     in.FeePercent,
	}, nil
}

func netProfitAt(price, quantity, feeRate, totalCost float64) float64 {
	sellFee := price * quantity * feeRate
	netSellValue := price*quantity - sellFee
	return netSellValue - totalCost
}

// 极端输入可能使中间量溢出或下溢（如 quantity=+Inf、0*Inf=NaN），此时不返回结果
func checkFinite(in TradeInput, quantity, totalCost, breakEven float64, lines []ProfitLine) error {
	ok := isFinite(quantity) && quantity > 0 &&
		isFinite(totalCost) &&
		isFinite(breakEven) && breakEven > 0
	for _, line := range lines {
		ok = ok && isFinite(line.Price) && isFinite(line.NetProfit) && isFinite(line.Percentage)
	}
	if ok {
		return nil
	}
	return &InvalidInputError{
		Field:  "investment_amount",
		Value:  in.InvestmentAmount,
		Reason: fmt.Sprintf("与 coin_price=%v 组合后计算结果超出浮点范围", in.CoinPrice),
	}
}
