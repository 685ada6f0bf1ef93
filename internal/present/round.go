package present

import (
	"math"
	"strconv"
)

// roundHalfAway 按小数位四舍五入，恰好一半时远离零（与浏览器 toFixed/Intl 一致）。
func roundHalfAway(v float64, digits int) float64 {
	p := math.Pow10(digits)
	scaled := v * p
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return math.Round(scaled) / p
}

// fixed 返回固定小数位文本。
func fixed(v float64, digits int) string {
	return strconv.FormatFloat(roundHalfAway(v, digits), 'f', digits, 64)
}
