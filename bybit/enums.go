package bybit

import (
	"fmt"
	"strconv"

	"github.com/lemconn/bybitlink/types"
)

// enumTable holds both serialization directions for a closed enum.
// Lookups are exact; the exchange's casing is part of the protocol.
type enumTable[T ~uint8] struct {
	name     string
	toWire   map[T]string
	fromWire map[string]T
}

func newEnumTable[T ~uint8](name string, toWire map[T]string) enumTable[T] {
	fromWire := make(map[string]T, len(toWire))
	for v, s := range toWire {
		fromWire[s] = v
	}
	return enumTable[T]{name: name, toWire: toWire, fromWire: fromWire}
}

func (t enumTable[T]) marshal(v T) ([]byte, error) {
	s, ok := t.toWire[v]
	if !ok {
		return nil, fmt.Errorf("%w: invalid %s", types.ErrMalformedParameters, t.string(v))
	}
	return []byte(s), nil
}

func (t enumTable[T]) parse(s string) (T, error) {
	v, ok := t.fromWire[s]
	if !ok {
		var zero T
		return zero, &types.FieldError{Kind: types.ErrUnknownEnumVariant, Value: s, Reason: "not a known " + t.name}
	}
	return v, nil
}

func (t enumTable[T]) string(v T) string {
	if s, ok := t.toWire[v]; ok {
		return s
	}
	return t.name + "(" + strconv.Itoa(int(v)) + ")"
}

// Category 产品类型
type Category uint8

const (
	CategorySpot Category = iota + 1
	CategoryLinear
	CategoryInverse
	CategoryOption
)

var categoryTable = newEnumTable("category", map[Category]string{
	CategorySpot:    "spot",
	CategoryLinear:  "linear",
	CategoryInverse: "inverse",
	CategoryOption:  "option",
})

// ParseCategory maps a wire string to a Category.
func ParseCategory(s string) (Category, error) { return categoryTable.parse(s) }

func (c Category) String() string                { return categoryTable.string(c) }
func (c Category) MarshalText() ([]byte, error)  { return categoryTable.marshal(c) }
func (c *Category) UnmarshalText(b []byte) error { return unmarshalEnum(categoryTable, c, b) }

// Side 订单方向
type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

var sideTable = newEnumTable("side", map[Side]string{
	SideBuy:  "Buy",
	SideSell: "Sell",
})

// ParseSide maps a wire string to a Side.
func ParseSide(s string) (Side, error) { return sideTable.parse(s) }

func (s Side) String() string                { return sideTable.string(s) }
func (s Side) MarshalText() ([]byte, error)  { return sideTable.marshal(s) }
func (s *Side) UnmarshalText(b []byte) error { return unmarshalEnum(sideTable, s, b) }

// OrderType 订单类型
type OrderType uint8

const (
	OrderTypeMarket OrderType = iota + 1
	OrderTypeLimit
)

var orderTypeTable = newEnumTable("order type", map[OrderType]string{
	OrderTypeMarket: "Market",
	OrderTypeLimit:  "Limit",
})

// ParseOrderType maps a wire string to an OrderType.
func ParseOrderType(s string) (OrderType, error) { return orderTypeTable.parse(s) }

func (t OrderType) String() string                { return orderTypeTable.string(t) }
func (t OrderType) MarshalText() ([]byte, error)  { return orderTypeTable.marshal(t) }
func (t *OrderType) UnmarshalText(b []byte) error { return unmarshalEnum(orderTypeTable, t, b) }

// TimeInForce 订单有效方式
type TimeInForce uint8

const (
	TimeInForceGTC TimeInForce = iota + 1
	TimeInForceIOC
	TimeInForceFOK
	TimeInForcePostOnly
)

var timeInForceTable = newEnumTable("time in force", map[TimeInForce]string{
	TimeInForceGTC:      "GTC",
	TimeInForceIOC:      "IOC",
	TimeInForceFOK:      "FOK",
	TimeInForcePostOnly: "PostOnly",
})

// ParseTimeInForce maps a wire string to a TimeInForce.
func ParseTimeInForce(s string) (TimeInForce, error) { return timeInForceTable.parse(s) }

func (t TimeInForce) String() string                { return timeInForceTable.string(t) }
func (t TimeInForce) MarshalText() ([]byte, error)  { return timeInForceTable.marshal(t) }
func (t *TimeInForce) UnmarshalText(b []byte) error { return unmarshalEnum(timeInForceTable, t, b) }

// PositionSide 持仓方向；空仓时交易所返回空字符串
type PositionSide uint8

const (
	PositionSideNone PositionSide = iota + 1
	PositionSideBuy
	PositionSideSell
)

var positionSideTable = newEnumTable("position side", map[PositionSide]string{
	PositionSideNone: "",
	PositionSideBuy:  "Buy",
	PositionSideSell: "Sell",
})

// ParsePositionSide maps a wire string to a PositionSide.
func ParsePositionSide(s string) (PositionSide, error) { return positionSideTable.parse(s) }

func (p PositionSide) String() string                { return positionSideTable.string(p) }
func (p PositionSide) MarshalText() ([]byte, error)  { return positionSideTable.marshal(p) }
func (p *PositionSide) UnmarshalText(b []byte) error { return unmarshalEnum(positionSideTable, p, b) }

func unmarshalEnum[T ~uint8](t enumTable[T], dst *T, b []byte) error {
	v, err := t.parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
