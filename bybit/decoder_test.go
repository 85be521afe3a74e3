package bybit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemconn/bybitlink/types"
)

func envelope(result string) []byte {
	return []byte(fmt.Sprintf(`{"retCode":0,"retMsg":"OK","result":%s,"retExtInfo":{},"time":1722030653718}`, result))
}

func TestDecodeResult_CreateOrder(t *testing.T) {
	t.Parallel()
	body := []byte(`{"retCode":0,"retMsg":"OK","result":{"orderId":"abc","orderLinkId":""},"retExtInfo":{},"time":1722030653718}`)

	resp, err := DecodeResult[CreateOrderResponse](body)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.OrderID)
	assert.Empty(t, resp.OrderLinkID)

	env, err := DecodeEnvelope(body)
	require.NoError(t, err)
	assert.Equal(t, "OK", env.RetMsg)
	assert.Equal(t, int64(1722030653718), env.Time.UnixMilli())
	assert.JSONEq(t, `{}`, string(env.RetExtInfo))
}

func TestDecodeResult_ExchangeError(t *testing.T) {
	t.Parallel()
	// result does not fit CreateOrderResponse; it must not be looked at.
	body := []byte(`{"retCode":10010,"retMsg":"Unmatched IP...","result":{},"retExtInfo":{},"time":1722154324869}`)

	resp, err := DecodeResult[CreateOrderResponse](body)
	assert.Nil(t, resp)

	var exErr *types.ExchangeError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, types.CodeUnmatchedIP, exErr.Code)
	assert.Equal(t, "Unmatched IP...", exErr.Message)
	assert.False(t, errors.Is(err, types.ErrSchemaMismatch))

	env, err := DecodeEnvelope(body)
	require.Error(t, err)
	require.NotNil(t, env)
	assert.Equal(t, 10010, env.RetCode)
}

func TestDecodeEnvelope_Invalid(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not json":       `<html>502 Bad Gateway</html>`,
		"array":          `[1,2]`,
		"no retCode":     `{"retMsg":"OK","result":{}}`,
		"string retCode": `{"retCode":"0","retMsg":"OK","result":{}}`,
		"no retMsg":      `{"retCode":0,"result":{}}`,
		"no result":      `{"retCode":0,"retMsg":"OK"}`,
		"missing commas": `{"retCode":0 "retMsg":"OK" "result":{"orderId":"abc" "orderLinkId":""}}`,
		"double comma":   `{"retCode":0,,"retMsg":"OK","result":{"orderId":"abc","orderLinkId":""}}`,
		"bare time":      `{"retCode":0,"retMsg":"OK","result":{},"time":garbage}`,
		"truncated":      `{"retCode":0,"retMsg":"OK","result":{"orderId":"abc"`,
	}
	for name, body := range cases {
		_, err := DecodeEnvelope([]byte(body))
		assert.True(t, errors.Is(err, types.ErrInvalidEnvelope), name)
	}

	_, err := DecodeEnvelope([]byte(`{"retCode":0,"retMsg":"OK","result":null}`))
	assert.NoError(t, err)
}

func TestDecodeEnvelope_TimeIsInformational(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`1`, `1722030653718`, `"1722030653718"`, `null`, `true`} {
		body := `{"retCode":0,"retMsg":"OK","result":{"orderId":"abc","orderLinkId":""},"retExtInfo":{},"time":` + raw + `}`
		resp, err := DecodeResult[CreateOrderResponse]([]byte(body))
		require.NoError(t, err, raw)
		assert.Equal(t, "abc", resp.OrderID, raw)
	}

	env, err := DecodeEnvelope([]byte(`{"retCode":0,"retMsg":"OK","result":{},"time":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.Time.UnixMilli())

	env, err = DecodeEnvelope([]byte(`{"retCode":0,"retMsg":"OK","result":{}}`))
	require.NoError(t, err)
	assert.True(t, env.Time.IsZero())
}

func TestDecode_NullIsSchemaMismatch(t *testing.T) {
	t.Parallel()
	_, err := DecodeResult[CreateOrderResponse](envelope(`{"orderId":null,"orderLinkId":null}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))

	var fe *types.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "orderId", fe.Field)

	_, err = DecodeResult[CancelAllResponse](envelope(`{"list":null,"success":"1"}`))
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))

	_, err = DecodeList[PositionInfo](envelope(`{"list":[{"symbol":"BTCUSDT","side":"Buy","size":"1","positionIdx":null}]}`))
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "list[0].positionIdx", fe.Field)
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))

	// numeric and time fields keep their own null handling
	pos, err := DecodeList[PositionInfo](envelope(`{"list":[{"symbol":"BTCUSDT","side":"Buy","size":null,"createdTime":null}]}`))
	require.NoError(t, err)
	assert.True(t, pos[0].Size.Null())
	assert.True(t, pos[0].CreatedTime.IsZero())
}

func TestDecode_TolerantNumeric(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`"3000.21"`, `3000.21`} {
		ticker, err := DecodeFirst[TickerData](envelope(`{"category":"linear","list":[{"symbol":"BTCUSDT","lastPrice":` + raw + `}]}`))
		require.NoError(t, err, raw)
		assert.Equal(t, 3000.21, ticker.LastPrice.Float64(), raw)
	}

	ticker, err := DecodeFirst[TickerData](envelope(`{"list":[{"symbol":"BTCUSDT","lastPrice":null}]}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, ticker.LastPrice.Float64())
	assert.True(t, ticker.LastPrice.Null())
}

func TestDecode_InvalidFieldType(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`true`, `[1]`, `{"v":1}`} {
		_, err := DecodeFirst[TickerData](envelope(`{"list":[{"symbol":"BTCUSDT","lastPrice":` + raw + `}]}`))
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, types.ErrInvalidFieldType), raw)

		var fe *types.FieldError
		require.True(t, errors.As(err, &fe), raw)
		assert.Equal(t, "list[0].lastPrice", fe.Field, raw)
	}
}

func TestDecode_InvalidNumericString(t *testing.T) {
	t.Parallel()
	_, err := DecodeFirst[TickerData](envelope(`{"list":[{"symbol":"BTCUSDT","lastPrice":"n/a"}]}`))
	assert.True(t, errors.Is(err, types.ErrInvalidNumericString))
}

func TestDecode_UnknownEnumVariant(t *testing.T) {
	t.Parallel()
	order := `{"orderId":"1","orderLinkId":"x","symbol":"BTCUSDT","price":"1","qty":"1","side":"Buy",` +
		`"orderStatus":"New","cumExecQty":"0","cumExecValue":"0","cumExecFee":"0","orderType":"%s"}`

	_, err := DecodeList[Order](envelope(`{"list":[` + fmt.Sprintf(order, "Limit") + `]}`))
	require.NoError(t, err)

	for _, lit := range []string{"StopLimit", "limit", "LIMIT", ""} {
		_, err := DecodeList[Order](envelope(`{"list":[` + fmt.Sprintf(order, lit) + `]}`))
		require.Error(t, err, lit)
		assert.True(t, errors.Is(err, types.ErrUnknownEnumVariant), lit)

		var fe *types.FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "list[0].orderType", fe.Field)
		assert.Equal(t, lit, fe.Value)
	}
}

func TestDecodeList_Orders(t *testing.T) {
	t.Parallel()
	body := envelope(`{"category":"linear","nextPageCursor":"","list":[{
		"orderId":"fd4300ae-7847-404e-b947-b46980a4d140","orderLinkId":"test-000005","blockTradeId":"",
		"symbol":"ETHUSDT","price":"1600.00","qty":"0.10","side":"Buy","isLeverage":"","positionIdx":1,
		"orderStatus":"New","cancelType":"UNKNOWN","rejectReason":"EC_NoError","avgPrice":"0",
		"leavesQty":"0.10","leavesValue":"160","cumExecQty":"0.00","cumExecValue":"0","cumExecFee":"0",
		"timeInForce":"GTC","orderType":"Limit","stopOrderType":"UNKNOWN","orderIv":"","triggerPrice":"0.00",
		"takeProfit":"2500.00","stopLoss":"1500.00","tpTriggerBy":"LastPrice","slTriggerBy":"LastPrice",
		"triggerDirection":0,"triggerBy":"UNKNOWN","lastPriceOnCreated":"","reduceOnly":false,
		"closeOnTrigger":false,"smpType":"None","smpGroup":0,"smpOrderId":"","tpslMode":"Full",
		"tpLimitPrice":"","slLimitPrice":"","placeType":"","createdTime":"1684738540559","updatedTime":"1684738540561"}]}`)

	orders, err := DecodeList[Order](body)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "fd4300ae-7847-404e-b947-b46980a4d140", o.OrderID)
	assert.Equal(t, SideBuy, o.Side)
	assert.Equal(t, OrderTypeLimit, o.OrderType)
	assert.Equal(t, TimeInForceGTC, o.TimeInForce)
	assert.Equal(t, 1600.0, o.Price.Float64())
	assert.Equal(t, 0.1, o.Qty.Float64())
	assert.Equal(t, 1, o.PositionIdx)
	assert.Equal(t, int64(1684738540559), o.CreatedTime.UnixMilli())
	assert.Equal(t, "2500.00", o.TakeProfit)
}

func TestDecodeList_Empty(t *testing.T) {
	t.Parallel()
	orders, err := DecodeList[Order](envelope(`{"list":[],"nextPageCursor":""}`))
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	_, err = DecodeFirst[AccountInfo](envelope(`{"list":[]}`))
	assert.True(t, errors.Is(err, types.ErrEmptyList))
}

func TestDecodeList_MissingList(t *testing.T) {
	t.Parallel()
	_, err := DecodeList[Order](envelope(`{"category":"linear"}`))
	assert.True(t, errors.Is(err, types.ErrMissingListField))

	_, err = DecodeFirst[AccountInfo](envelope(`{}`))
	assert.True(t, errors.Is(err, types.ErrMissingListField))

	_, err = DecodeList[Order](envelope(`{"list":{"orderId":"1"}}`))
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))
}

func TestDecode_RequiredField(t *testing.T) {
	t.Parallel()
	_, err := DecodeResult[CreateOrderResponse](envelope(`{"orderLinkId":"x"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))

	var fe *types.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "orderId", fe.Field)
	assert.Contains(t, fe.Reason, "missing")

	_, err = DecodeResult[CreateOrderResponse](envelope(`{"orderId":1,"orderLinkId":"x"}`))
	assert.True(t, errors.Is(err, types.ErrSchemaMismatch))
}

func TestDecodeFirst_WalletBalance(t *testing.T) {
	t.Parallel()
	body := envelope(`{"list":[{"totalEquity":"3.31216591","accountIMRate":"0","totalMarginBalance":"3.00326056",
		"totalInitialMargin":"0","accountType":"UNIFIED","totalAvailableBalance":"3.00326056","accountMMRate":"0",
		"totalPerpUPL":"0","totalWalletBalance":"3.00326056","accountLTV":"0","totalMaintenanceMargin":"0",
		"coin":[
			{"availableToBorrow":"3","bonus":"0","accruedInterest":"0","availableToWithdraw":"0","totalOrderIM":"0",
			 "equity":"0","totalPositionMM":"0","usdValue":"0","unrealisedPnl":"0","collateralSwitch":true,
			 "spotHedgingQty":"0","borrowAmount":"0.0","totalPositionIM":"0","walletBalance":"0","cumRealisedPnl":"0",
			 "locked":"0","marginCollateral":true,"coin":"BTC"},
			{"equity":1.5,"walletBalance":"1.5","usdValue":null,"coin":"USDT","marginCollateral":true}
		]}]}`)

	info, err := DecodeFirst[AccountInfo](body)
	require.NoError(t, err)
	assert.Equal(t, "UNIFIED", info.AccountType)
	assert.Equal(t, 3.31216591, info.TotalEquity.Float64())
	require.Len(t, info.Coin, 2)
	assert.Equal(t, "BTC", info.Coin[0].Coin)
	assert.True(t, info.Coin[0].CollateralSwitch)
	assert.Equal(t, 1.5, info.Coin[1].Equity.Float64())
	assert.True(t, info.Coin[1].UsdValue.Null())
}

func TestDecodeFirst_NestedFieldPath(t *testing.T) {
	t.Parallel()
	body := envelope(`{"list":[{"accountType":"UNIFIED","totalEquity":"1","totalWalletBalance":"1","coin":[
		{"coin":"BTC","equity":"0","walletBalance":"0"},
		{"coin":"USDT","equity":false,"walletBalance":"0"}]}]}`)

	_, err := DecodeFirst[AccountInfo](body)
	require.Error(t, err)

	var fe *types.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "list[0].coin[1].equity", fe.Field)
	assert.True(t, errors.Is(err, types.ErrInvalidFieldType))
}

func TestDecodeList_Instruments(t *testing.T) {
	t.Parallel()
	body := envelope(`{"category":"linear","list":[{"symbol":"BTCUSDT","contractType":"LinearPerpetual",
		"status":"Trading","baseCoin":"BTC","quoteCoin":"USDT","launchTime":"1585526400000","deliveryTime":"0",
		"deliveryFeeRate":"","priceScale":"2","leverageFilter":{"minLeverage":"1","maxLeverage":"100.00","leverageStep":"0.01"},
		"priceFilter":{"minPrice":"0.10","maxPrice":"1999999.80","tickSize":"0.10"},
		"lotSizeFilter":{"maxOrderQty":"1190.000","minOrderQty":"0.001","qtyStep":"0.001","postOnlyMaxOrderQty":"1190.000",
		"maxMktOrderQty":"500.000","minNotionalValue":"5"},"unifiedMarginTrade":true,"fundingInterval":480,"settleCoin":"USDT"}]}`)

	list, err := DecodeList[ContractInfo](body)
	require.NoError(t, err)
	require.Len(t, list, 1)

	c := list[0]
	assert.Equal(t, "BTCUSDT", c.Symbol)
	assert.Equal(t, 100.0, c.LeverageFilter.MaxLeverage.Float64())
	assert.Equal(t, 0.1, c.PriceFilter.TickSize.Float64())
	assert.Equal(t, 0.001, c.LotSizeFilter.QtyStep.Float64())
	assert.Equal(t, 480, c.FundingInterval)
	assert.True(t, c.DeliveryTime.IsZero())
	assert.Equal(t, int64(1585526400000), c.LaunchTime.UnixMilli())
}

func TestDecodeList_Positions(t *testing.T) {
	t.Parallel()
	body := envelope(`{"category":"linear","list":[
		{"symbol":"BTCUSDT","side":"Buy","size":"0.01","positionIdx":0,"avgPrice":"30000","leverage":"10","liqPrice":""},
		{"symbol":"ETHUSDT","side":"","size":"0","positionIdx":0,"avgPrice":"0","leverage":"10","liqPrice":""}]}`)

	positions, err := DecodeList[PositionInfo](body)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, PositionSideBuy, positions[0].Side)
	assert.Equal(t, 0.01, positions[0].Size.Float64())
	assert.Equal(t, PositionSideNone, positions[1].Side)
}

func TestDecodeResult_ServerTime(t *testing.T) {
	t.Parallel()
	st, err := DecodeResult[ServerTime](envelope(`{"timeSecond":"1688639403","timeNano":"1688639403423213947"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1688639403), st.TimeSecond.Unix())
	assert.Equal(t, int64(1688639403423213947), st.TimeNano.UnixNano())
}
