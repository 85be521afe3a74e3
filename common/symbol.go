package common

import (
	"fmt"
	"strings"
)

// NormalizeSymbol 标准化交易对格式为 BASE/QUOTE (如 BTC/USDT)
func NormalizeSymbol(base, quote string) string {
	return strings.ToUpper(base) + "/" + strings.ToUpper(quote)
}

// NormalizeContractSymbol 标准化合约交易对格式 BASE/QUOTE:SETTLE (如 BTC/USDT:USDT)
func NormalizeContractSymbol(base, quote, settle string) string {
	if settle != "" {
		return NormalizeSymbol(base, quote) + ":" + strings.ToUpper(settle)
	}
	return NormalizeSymbol(base, quote)
}

// ToExchangeSymbol 转换为交易所格式 (BTC/USDT -> BTCUSDT, BTC/USDT:USDT -> BTCUSDT)
// 已经是交易所格式的 symbol 原样大写返回
func ToExchangeSymbol(symbol string) (string, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return "", fmt.Errorf("empty symbol")
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if !strings.Contains(s, "/") {
		return strings.ToUpper(s), nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid symbol format: %s, expected BASE/QUOTE", symbol)
	}
	return strings.ToUpper(parts[0] + parts[1]), nil
}
