package bybit

import (
	"context"
	"fmt"
	"strings"

	"github.com/lemconn/bybitlink/types"
)

const (
	pathWalletBalance = "/v5/account/wallet-balance"
	pathPositionList  = "/v5/position/list"
	pathSetLeverage   = "/v5/position/set-leverage"
)

// Account types accepted by /v5/account/wallet-balance.
const (
	AccountTypeUnified  = "UNIFIED"
	AccountTypeContract = "CONTRACT"
	AccountTypeSpot     = "SPOT"
)

// GetWalletBalance 查询钱包余额，coins 为空时返回全部币种
func (c *Client) GetWalletBalance(ctx context.Context, accountType string, coins ...string) (*AccountInfo, error) {
	if accountType == "" {
		accountType = AccountTypeUnified
	}
	params := types.NewParams().
		Set("accountType", accountType).
		SetIf(len(coins) > 0, "coin", strings.ToUpper(strings.Join(coins, ",")))

	body, err := c.signed(ctx, types.KindRead, pathWalletBalance, params)
	if err != nil {
		return nil, fmt.Errorf("get wallet balance: %w", err)
	}
	info, err := DecodeFirst[AccountInfo](body)
	if err != nil {
		c.logExchangeError("get wallet balance", err)
		return nil, fmt.Errorf("get wallet balance: %w", err)
	}
	return info, nil
}

// GetPositions 查询持仓；symbol 为空时 linear 需由交易所按 settleCoin 过滤，这里默认 USDT
func (c *Client) GetPositions(ctx context.Context, category Category, symbol string) ([]PositionInfo, error) {
	params, err := categorySymbol(category, symbol)
	if err != nil {
		return nil, err
	}
	if symbol == "" && category == CategoryLinear {
		params.Set("settleCoin", "USDT")
	}

	body, err := c.signed(ctx, types.KindRead, pathPositionList, params)
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	positions, err := DecodeList[PositionInfo](body)
	if err != nil {
		c.logExchangeError("get positions", err)
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return positions, nil
}

// SetLeverage 设置杠杆，多空杠杆可分别设置
func (c *Client) SetLeverage(ctx context.Context, category Category, symbol, buyLeverage, sellLeverage string) error {
	s, err := exchangeSymbol(symbol)
	if err != nil {
		return err
	}
	if buyLeverage == "" || sellLeverage == "" {
		return fmt.Errorf("%w: buy and sell leverage are required", types.ErrMalformedParameters)
	}
	params := types.NewParams().
		Set("category", category).
		Set("symbol", s).
		Set("buyLeverage", buyLeverage).
		Set("sellLeverage", sellLeverage)

	body, err := c.signed(ctx, types.KindWrite, pathSetLeverage, params)
	if err != nil {
		return fmt.Errorf("set leverage: %w", err)
	}
	if _, err := DecodeEnvelope(body); err != nil {
		c.logExchangeError("set leverage", err)
		return fmt.Errorf("set leverage: %w", err)
	}
	return nil
}
