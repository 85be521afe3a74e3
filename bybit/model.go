package bybit

import "github.com/lemconn/bybitlink/types"

// Numeric fields use types.Number (string, number or null on the wire).
// Fields the exchange routinely sends as "" when unset stay strings.

// CreateOrderResponse 下单/撤单/改单返回
type CreateOrderResponse struct {
	OrderID     string `json:"orderId" required:"true"`
	OrderLinkID string `json:"orderLinkId" required:"true"`
}

// CancelAllResponse 批量撤单返回
type CancelAllResponse struct {
	List    []CreateOrderResponse `json:"list" required:"true"`
	Success string                `json:"success"`
}

// Order 订单（/v5/order/realtime, /v5/order/history）
type Order struct {
	OrderID            string       `json:"orderId" required:"true"`
	OrderLinkID        string       `json:"orderLinkId" required:"true"`
	BlockTradeID       string       `json:"blockTradeId"`
	Symbol             string       `json:"symbol" required:"true"`
	Price              types.Number `json:"price" required:"true"`
	Qty                types.Number `json:"qty" required:"true"`
	Side               Side         `json:"side" required:"true"`
	IsLeverage         string       `json:"isLeverage"`
	PositionIdx        int          `json:"positionIdx"`
	OrderStatus        string       `json:"orderStatus" required:"true"`
	CreateType         string       `json:"createType"`
	CancelType         string       `json:"cancelType"`
	RejectReason       string       `json:"rejectReason"`
	AvgPrice           string       `json:"avgPrice"`
	LeavesQty          string       `json:"leavesQty"`
	LeavesValue        string       `json:"leavesValue"`
	CumExecQty         types.Number `json:"cumExecQty" required:"true"`
	CumExecValue       types.Number `json:"cumExecValue" required:"true"`
	CumExecFee         types.Number `json:"cumExecFee" required:"true"`
	TimeInForce        TimeInForce  `json:"timeInForce"`
	OrderType          OrderType    `json:"orderType" required:"true"`
	StopOrderType      string       `json:"stopOrderType"`
	OrderIv            string       `json:"orderIv"`
	MarketUnit         string       `json:"marketUnit"`
	TriggerPrice       string       `json:"triggerPrice"`
	TakeProfit         string       `json:"takeProfit"`
	StopLoss           string       `json:"stopLoss"`
	TpslMode           string       `json:"tpslMode"`
	TpLimitPrice       string       `json:"tpLimitPrice"`
	SlLimitPrice       string       `json:"slLimitPrice"`
	TpTriggerBy        string       `json:"tpTriggerBy"`
	SlTriggerBy        string       `json:"slTriggerBy"`
	TriggerDirection   int          `json:"triggerDirection"`
	TriggerBy          string       `json:"triggerBy"`
	LastPriceOnCreated string       `json:"lastPriceOnCreated"`
	ReduceOnly         bool         `json:"reduceOnly"`
	CloseOnTrigger     bool         `json:"closeOnTrigger"`
	PlaceType          string       `json:"placeType"`
	SmpType            string       `json:"smpType"`
	SmpGroup           int          `json:"smpGroup"`
	SmpOrderID         string       `json:"smpOrderId"`
	CreatedTime        types.Time   `json:"createdTime"`
	UpdatedTime        types.Time   `json:"updatedTime"`
}

// AccountInfo 统一账户钱包（/v5/account/wallet-balance 的 list[0]）
type AccountInfo struct {
	AccountType            string       `json:"accountType" required:"true"`
	AccountIMRate          types.Number `json:"accountIMRate"`
	AccountMMRate          types.Number `json:"accountMMRate"`
	AccountLTV             types.Number `json:"accountLTV"`
	TotalEquity            types.Number `json:"totalEquity" required:"true"`
	TotalWalletBalance     types.Number `json:"totalWalletBalance" required:"true"`
	TotalMarginBalance     types.Number `json:"totalMarginBalance"`
	TotalAvailableBalance  types.Number `json:"totalAvailableBalance"`
	TotalPerpUPL           types.Number `json:"totalPerpUPL"`
	TotalInitialMargin     types.Number `json:"totalInitialMargin"`
	TotalMaintenanceMargin types.Number `json:"totalMaintenanceMargin"`
	Coin                   []CoinInfo   `json:"coin" required:"true"`
}

// CoinInfo 单币种余额
type CoinInfo struct {
	Coin                string       `json:"coin" required:"true"`
	Equity              types.Number `json:"equity" required:"true"`
	UsdValue            types.Number `json:"usdValue"`
	WalletBalance       types.Number `json:"walletBalance" required:"true"`
	Locked              types.Number `json:"locked"`
	UnrealisedPnl       types.Number `json:"unrealisedPnl"`
	CumRealisedPnl      types.Number `json:"cumRealisedPnl"`
	Bonus               types.Number `json:"bonus"`
	BorrowAmount        string       `json:"borrowAmount"`
	AvailableToWithdraw string       `json:"availableToWithdraw"`
	MarginCollateral    bool         `json:"marginCollateral"`
	CollateralSwitch    bool         `json:"collateralSwitch"`
}

// ContractInfo 合约/交易对信息（/v5/market/instruments-info）
type ContractInfo struct {
	Symbol          string         `json:"symbol" required:"true"`
	ContractType    string         `json:"contractType"`
	Status          string         `json:"status" required:"true"`
	BaseCoin        string         `json:"baseCoin" required:"true"`
	QuoteCoin       string         `json:"quoteCoin" required:"true"`
	SettleCoin      string         `json:"settleCoin"`
	LaunchTime      types.Time     `json:"launchTime"`
	DeliveryTime    types.Time     `json:"deliveryTime"`
	PriceScale      types.Number   `json:"priceScale"`
	FundingInterval int            `json:"fundingInterval"`
	LeverageFilter  LeverageFilter `json:"leverageFilter"`
	PriceFilter     PriceFilter    `json:"priceFilter" required:"true"`
	LotSizeFilter   LotSizeFilter  `json:"lotSizeFilter" required:"true"`
}

// LeverageFilter 杠杆过滤器
type LeverageFilter struct {
	MinLeverage  types.Number `json:"minLeverage"`
	MaxLeverage  types.Number `json:"maxLeverage"`
	LeverageStep types.Number `json:"leverageStep"`
}

// PriceFilter 价格过滤器
type PriceFilter struct {
	MinPrice types.Number `json:"minPrice"`
	MaxPrice types.Number `json:"maxPrice"`
	TickSize types.Number `json:"tickSize" required:"true"`
}

// LotSizeFilter 数量过滤器（现货用 basePrecision/minOrderAmt，合约用 qtyStep/minNotionalValue）
type LotSizeFilter struct {
	MaxOrderQty      types.Number `json:"maxOrderQty"`
	MinOrderQty      types.Number `json:"minOrderQty"`
	QtyStep          types.Number `json:"qtyStep"`
	BasePrecision    types.Number `json:"basePrecision"`
	QuotePrecision   types.Number `json:"quotePrecision"`
	MinOrderAmt      types.Number `json:"minOrderAmt"`
	MaxOrderAmt      types.Number `json:"maxOrderAmt"`
	MinNotionalValue types.Number `json:"minNotionalValue"`
	MaxMktOrderQty   types.Number `json:"maxMktOrderQty"`
}

// PositionInfo 持仓（/v5/position/list）
type PositionInfo struct {
	Symbol         string       `json:"symbol" required:"true"`
	Side           PositionSide `json:"side" required:"true"`
	Size           types.Number `json:"size" required:"true"`
	PositionIdx    int          `json:"positionIdx"`
	TradeMode      int          `json:"tradeMode"`
	AvgPrice       types.Number `json:"avgPrice"`
	PositionValue  types.Number `json:"positionValue"`
	Leverage       types.Number `json:"leverage"`
	MarkPrice      types.Number `json:"markPrice"`
	LiqPrice       string       `json:"liqPrice"`
	BustPrice      string       `json:"bustPrice"`
	PositionIM     types.Number `json:"positionIM"`
	PositionMM     types.Number `json:"positionMM"`
	TakeProfit     string       `json:"takeProfit"`
	StopLoss       string       `json:"stopLoss"`
	UnrealisedPnl  types.Number `json:"unrealisedPnl"`
	CurRealisedPnl types.Number `json:"curRealisedPnl"`
	CumRealisedPnl types.Number `json:"cumRealisedPnl"`
	PositionStatus string       `json:"positionStatus"`
	AutoAddMargin  int          `json:"autoAddMargin"`
	IsReduceOnly   bool         `json:"isReduceOnly"`
	Seq            int64        `json:"seq"`
	CreatedTime    types.Time   `json:"createdTime"`
	UpdatedTime    types.Time   `json:"updatedTime"`
}

// TickerData 行情（/v5/market/tickers，现货与合约共用）
type TickerData struct {
	Symbol            string       `json:"symbol" required:"true"`
	LastPrice         types.Number `json:"lastPrice" required:"true"`
	IndexPrice        types.Number `json:"indexPrice"`
	MarkPrice         types.Number `json:"markPrice"`
	PrevPrice24h      types.Number `json:"prevPrice24h"`
	Price24hPcnt      types.Number `json:"price24hPcnt"`
	HighPrice24h      types.Number `json:"highPrice24h"`
	LowPrice24h       types.Number `json:"lowPrice24h"`
	PrevPrice1h       types.Number `json:"prevPrice1h"`
	OpenInterest      types.Number `json:"openInterest"`
	OpenInterestValue types.Number `json:"openInterestValue"`
	Turnover24h       types.Number `json:"turnover24h"`
	Volume24h         types.Number `json:"volume24h"`
	FundingRate       types.Number `json:"fundingRate"`
	NextFundingTime   types.Time   `json:"nextFundingTime"`
	Bid1Price         types.Number `json:"bid1Price"`
	Bid1Size          types.Number `json:"bid1Size"`
	Ask1Price         types.Number `json:"ask1Price"`
	Ask1Size          types.Number `json:"ask1Size"`
}
