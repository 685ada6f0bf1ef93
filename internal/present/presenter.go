package present

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"trade-helper/internal/config"
	"trade-helper/internal/profit"
)

const (
	// VariantRows 为三列结果行展示。
	VariantRows = "rows"
	// VariantText 为逐行文本展示。
	VariantText = "text"

	breakEvenLabel = "Break Even Price:"
)

// Presenter 将计算结果转换为展示用文本。
type Presenter interface {
	Render(summary profit.TradeSummary) View
}

// Field 为单个标签/取值对。
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row 为一行收益展示：涨跌幅、价格、净收益。
type Row struct {
	Percentage string `json:"percentage"`
	Price      string `json:"price"`
	Net        string `json:"net"`
}

// View 为渲染结果。Rows 与 Lines 按变体二选一填充。
type View struct {
	BreakEven Field    `json:"break_even"`
	Rows      []Row    `json:"rows,omitempty"`
	Lines     []string `json:"lines,omitempty"`
}

// New 根据配置选择展示变体。
func New(cfg config.PresentConfig) (Presenter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Variant)) {
	case VariantRows, "":
		tag, err := language.Parse(lo.Ternary(cfg.Locale == "", "en-US", cfg.Locale))
		if err != nil {
			return nil, fmt.Errorf("present: 解析 locale 失败: %w", err)
		}
		return NewRowsPresenter(tag, cfg.PriceDigits, cfg.NetDigits), nil
	case VariantText:
		return TextPresenter{}, nil
	default:
		return nil, fmt.Errorf("present: 未知展示变体 %q", cfg.Variant)
	}
}

// RowsPresenter 输出三列结果行，金额按 locale 分组并固定小数位。
type RowsPresenter struct {
	printer     *message.Printer
	priceDigits int
	netDigits   int
}

// NewRowsPresenter 创建 RowsPresenter。
func NewRowsPresenter(tag language.Tag, priceDigits, netDigits int) *RowsPresenter {
	return &RowsPresenter{
		printer:     message.NewPrinter(tag),
		priceDigits: priceDigits,
		netDigits:   netDigits,
	}
}

func (p *RowsPresenter) Render(summary profit.TradeSummary) View {
	return View{
		BreakEven: Field{Label: breakEvenLabel, Value: p.decimal(summary.BreakEvenPrice, p.priceDigits)},
		Rows: lo.Map(summary.Lines, func(line profit.ProfitLine, _ int) Row {
			return Row{
				Percentage: fixed(line.Percentage, 2) + "%",
				Price:      p.decimal(line.Price, p.priceDigits),
				Net:        p.decimal(line.NetProfit, p.netDigits),
			}
		}),
	}
}

func (p *RowsPresenter) decimal(v float64, digits int) string {
	return p.printer.Sprintf("%v", number.Decimal(roundHalfAway(v, digits), number.Scale(digits)))
}

// TextPresenter 输出逐行文本，例如 "1%: $101.506 ($10.025)"。
type TextPresenter struct{}

func (TextPresenter) Render(summary profit.TradeSummary) View {
	breakEven := fixed(summary.BreakEvenPrice, 3)

	lines := make([]string, 0, len(summary.Lines)+1)
	lines = append(lines, "Break Even: "+breakEven)
	for _, line := range summary.Lines {
		label := fmt.Sprintf("%d%%", line.Gain)
		if line.Kind == profit.LineKindCurrent {
			label = fixed(line.Percentage, 2) + "%"
		}
		lines = append(lines, fmt.Sprintf("%s: $%s ($%s)", label, fixed(line.Price, 3), fixed(line.NetProfit, 3)))
	}

	return View{
		BreakEven: Field{Label: "Break Even:", Value: breakEven},
		Lines:     lines,
	}
}

// Write 将 View 以对齐的文本形式写出。
func Write(w io.Writer, view View) error {
	if len(view.Lines) > 0 {
		for _, line := range view.Lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("present: 写出结果失败: %w", err)
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", view.BreakEven.Label, view.BreakEven.Value)
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.Percentage, row.Price, row.Net)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("present: 写出结果失败: %w", err)
	}
	return nil
}
