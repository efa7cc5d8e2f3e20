package limitbook

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

type Side uint8

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Opposite returns the side an order of side s matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func ParseSide(token string) (Side, bool) {
	switch token {
	case "BUY":
		return Buy, true
	case "SELL":
		return Sell, true
	}
	return 0, false
}

type TimeInForce uint8

const (
	ImmediateOrCancel TimeInForce = iota
	GoodForDay
)

func (t TimeInForce) String() string {
	if t == GoodForDay {
		return "GFD"
	}
	return "IOC"
}

// ParseTimeInForce never fails: anything other than GFD is immediate-or-cancel.
func ParseTimeInForce(token string) TimeInForce {
	if token == "GFD" {
		return GoodForDay
	}
	return ImmediateOrCancel
}

type Order struct {
	ID          string
	Side        Side
	TimeInForce TimeInForce
	Price       uint64 // ticks
	Quantity    uint64 // remaining
}

// NewOrder takes its fields in order-entry order: side, time in force, price, quantity, id.
func NewOrder(side Side, tif TimeInForce, price, quantity uint64, id string) Order {
	return Order{
		ID:          id,
		Side:        side,
		TimeInForce: tif,
		Price:       price,
		Quantity:    quantity,
	}
}

type Trade struct {
	Seq           uint64
	RestingID     string
	RestingPrice  uint64
	IncomingID    string
	IncomingPrice uint64
	IncomingSide  Side
	Quantity      uint64

	// quantities left on each order right after this execution
	RestingRemaining  uint64
	IncomingRemaining uint64
}

func (t Trade) String() string {
	return fmt.Sprintf("TRADE %s %d %d %s %d %d",
		t.RestingID, t.RestingPrice, t.Quantity,
		t.IncomingID, t.IncomingPrice, t.Quantity)
}

// Notional is the traded value in ticks, executed at the resting price.
func (t Trade) Notional() decimal.Decimal {
	return decimalFromUint(t.RestingPrice).Mul(decimalFromUint(t.Quantity))
}

func decimalFromUint(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

type LevelSummary struct {
	Price    uint64
	Quantity uint64
	Orders   int
}

// Snapshot lists both sides in descending price order.
type Snapshot struct {
	Asks []LevelSummary
	Bids []LevelSummary
}

type OrderStatus string

const (
	OrderStatusRested    OrderStatus = "rested"
	OrderStatusPartial   OrderStatus = "partial"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusDiscarded OrderStatus = "discarded"
	OrderStatusModified  OrderStatus = "modified"
)

type OrderUpdate struct {
	ID        string
	Status    OrderStatus
	Remaining uint64
}
