package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse 表示表单文本无法解析为数字。
var ErrParse = errors.New("session: 无法解析输入")

// RawInput 为表单中读取到的原始文本值。
type RawInput struct {
	Price   string `json:"price"`
	Amount  string `json:"amount"`
	Current string `json:"current"`
}

// ParseLine 解析形如 "price amount [current]" 的一行文本，字段可用空白或分号分隔。
func ParseLine(line string) (RawInput, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) < 2 || len(fields) > 3 {
		return RawInput{}, fmt.Errorf("%w: 需要 2~3 个字段，实际为 %d: %q", ErrParse, len(fields), line)
	}

	raw := RawInput{Price: fields[0], Amount: fields[1]}
	if len(fields) == 3 {
		raw.Current = fields[2]
	}
	return raw, nil
}

// 空文本按 0 处理
func parseNumber(field, value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrParse, field, value)
	}
	return v, nil
}
