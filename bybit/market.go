package bybit

import (
	"context"
	"fmt"
	"time"

	"github.com/lemconn/bybitlink/types"
)

const (
	pathServerTime  = "/v5/market/time"
	pathInstruments = "/v5/market/instruments-info"
	pathTickers     = "/v5/market/tickers"
)

// ServerTime /v5/market/time 返回
type ServerTime struct {
	TimeSecond types.Time `json:"timeSecond" required:"true"`
	TimeNano   types.Time `json:"timeNano" required:"true"`
}

// GetServerTime 获取服务器时间，可用于校准本地时钟与 recv window
func (c *Client) GetServerTime(ctx context.Context) (time.Time, error) {
	body, err := c.public(ctx, pathServerTime, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("get server time: %w", err)
	}
	st, err := DecodeResult[ServerTime](body)
	if err != nil {
		return time.Time{}, fmt.Errorf("get server time: %w", err)
	}
	return st.TimeNano.Time, nil
}

// GetInstruments 获取交易对信息；symbol 为空返回该 category 下全部
func (c *Client) GetInstruments(ctx context.Context, category Category, symbol string) ([]ContractInfo, error) {
	params, err := categorySymbol(category, symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.public(ctx, pathInstruments, params)
	if err != nil {
		return nil, fmt.Errorf("get instruments: %w", err)
	}
	instruments, err := DecodeList[ContractInfo](body)
	if err != nil {
		return nil, fmt.Errorf("get instruments: %w", err)
	}
	return instruments, nil
}

// GetTickers 获取行情；symbol 为空返回该 category 下全部
func (c *Client) GetTickers(ctx context.Context, category Category, symbol string) ([]TickerData, error) {
	params, err := categorySymbol(category, symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.public(ctx, pathTickers, params)
	if err != nil {
		return nil, fmt.Errorf("get tickers: %w", err)
	}
	tickers, err := DecodeList[TickerData](body)
	if err != nil {
		return nil, fmt.Errorf("get tickers: %w", err)
	}
	return tickers, nil
}
