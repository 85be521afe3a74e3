package bybit

import (
	"context"
	"errors"
	"fmt"

	"github.com/lemconn/bybitlink/common"
	"github.com/lemconn/bybitlink/types"
)

const (
	pathOrderCreate    = "/v5/order/create"
	pathOrderCancel    = "/v5/order/cancel"
	pathOrderCancelAll = "/v5/order/cancel-all"
	pathOrderRealtime  = "/v5/order/realtime"
	pathOrderHistory   = "/v5/order/history"
)

// OrderRequest 下单参数
type OrderRequest struct {
	Category  Category
	Symbol    string // BTCUSDT 或 BTC/USDT[:USDT]
	Side      Side
	OrderType OrderType
	Qty       string
	// Price 限价单必填
	Price       string
	TimeInForce TimeInForce
	// OrderLinkID 为空时自动生成
	OrderLinkID string
	ReduceOnly  *bool
	// PositionIdx 0 单向持仓，1 双向多，2 双向空
	PositionIdx *int
	// MarketUnit 现货市价单数量单位 baseCoin/quoteCoin
	MarketUnit string
}

func (r OrderRequest) params() (*types.Params, error) {
	symbol, err := exchangeSymbol(r.Symbol)
	if err != nil {
		return nil, err
	}
	if r.Qty == "" {
		return nil, fmt.Errorf("%w: qty is required", types.ErrMalformedParameters)
	}
	if r.OrderType == OrderTypeLimit && r.Price == "" {
		return nil, fmt.Errorf("%w: limit order requires price", types.ErrMalformedParameters)
	}

	linkID := r.OrderLinkID
	if linkID == "" {
		linkID = common.GenerateClientOrderID(bybitName)
	}

	p := types.NewParams().
		Set("category", r.Category).
		Set("symbol", symbol).
		Set("side", r.Side).
		Set("orderType", r.OrderType).
		Set("qty", r.Qty).
		SetIf(r.Price != "", "price", r.Price).
		SetIf(r.TimeInForce != 0, "timeInForce", r.TimeInForce).
		SetIf(r.PositionIdx != nil, "positionIdx", derefInt(r.PositionIdx)).
		SetIf(r.ReduceOnly != nil, "reduceOnly", derefBool(r.ReduceOnly)).
		SetIf(r.MarketUnit != "", "marketUnit", r.MarketUnit).
		Set("orderLinkId", linkID)
	return p, nil
}

// OrderRef identifies an order either by exchange id or by client link id.
type OrderRef struct {
	key   string
	value string
}

// ByOrderID references an order by the exchange-assigned id.
func ByOrderID(id string) OrderRef {
	return OrderRef{key: "orderId", value: id}
}

// ByOrderLinkID references an order by the client-assigned id.
func ByOrderLinkID(id string) OrderRef {
	return OrderRef{key: "orderLinkId", value: id}
}

func (r OrderRef) String() string {
	return r.key + "=" + r.value
}

func (r OrderRef) apply(p *types.Params) error {
	if r.key == "" || r.value == "" {
		return fmt.Errorf("%w: order id or order link id is required", types.ErrMalformedParameters)
	}
	p.Set(r.key, r.value)
	return nil
}

// CreateOrder 下单
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*CreateOrderResponse, error) {
	params, err := req.params()
	if err != nil {
		return nil, err
	}

	body, err := c.signed(ctx, types.KindWrite, pathOrderCreate, params)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	resp, err := DecodeResult[CreateOrderResponse](body)
	if err != nil {
		c.logExchangeError("create order", err)
		return nil, fmt.Errorf("create order: %w", err)
	}
	return resp, nil
}

// CancelOrder 撤单
func (c *Client) CancelOrder(ctx context.Context, category Category, symbol string, ref OrderRef) (*CreateOrderResponse, error) {
	s, err := exchangeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams().
		Set("category", category).
		Set("symbol", s)
	if err := ref.apply(params); err != nil {
		return nil, err
	}

	body, err := c.signed(ctx, types.KindWrite, pathOrderCancel, params)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	resp, err := DecodeResult[CreateOrderResponse](body)
	if err != nil {
		c.logExchangeError("cancel order", err)
		return nil, fmt.Errorf("cancel order %s: %w", ref, err)
	}
	return resp, nil
}

// CancelAllOrders 撤销全部挂单；symbol 为空时按 category 撤销
func (c *Client) CancelAllOrders(ctx context.Context, category Category, symbol string) (*CancelAllResponse, error) {
	params, err := categorySymbol(category, symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.signed(ctx, types.KindWrite, pathOrderCancelAll, params)
	if err != nil {
		return nil, fmt.Errorf("cancel all orders: %w", err)
	}
	resp, err := DecodeResult[CancelAllResponse](body)
	if err != nil {
		c.logExchangeError("cancel all orders", err)
		return nil, fmt.Errorf("cancel all orders: %w", err)
	}
	return resp, nil
}

// GetOpenOrders 查询当前挂单
func (c *Client) GetOpenOrders(ctx context.Context, category Category, symbol string) ([]Order, error) {
	params, err := categorySymbol(category, symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.signed(ctx, types.KindRead, pathOrderRealtime, params)
	if err != nil {
		return nil, fmt.Errorf("get open orders: %w", err)
	}
	orders, err := DecodeList[Order](body)
	if err != nil {
		c.logExchangeError("get open orders", err)
		return nil, fmt.Errorf("get open orders: %w", err)
	}
	return orders, nil
}

// GetOrder 查询单个订单，先查实时订单，找不到再查历史订单。
// 两处都没有时返回 types.ErrEmptyList。
func (c *Client) GetOrder(ctx context.Context, category Category, symbol string, ref OrderRef) (*Order, error) {
	s, err := exchangeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams().
		Set("category", category).
		Set("symbol", s)
	if err := ref.apply(params); err != nil {
		return nil, err
	}

	order, err := c.getOrder(ctx, pathOrderRealtime, params)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, types.ErrEmptyList) {
		return nil, fmt.Errorf("get order %s: %w", ref, err)
	}

	order, err = c.getOrder(ctx, pathOrderHistory, params)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", ref, err)
	}
	return order, nil
}

func (c *Client) getOrder(ctx context.Context, path string, params *types.Params) (*Order, error) {
	body, err := c.signed(ctx, types.KindRead, path, params)
	if err != nil {
		return nil, err
	}
	order, err := DecodeFirst[Order](body)
	if err != nil {
		c.logExchangeError("get order", err)
		return nil, err
	}
	return order, nil
}

func categorySymbol(category Category, symbol string) (*types.Params, error) {
	params := types.NewParams().Set("category", category)
	if symbol == "" {
		return params, nil
	}
	s, err := exchangeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return params.Set("symbol", s), nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
