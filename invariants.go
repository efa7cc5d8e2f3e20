package limitbook

import (
	"errors"
	"fmt"
)

var (
	ErrCrossedBook     = errors.New("limitbook: crossed book")
	ErrEmptyLevel      = errors.New("limitbook: empty price level")
	ErrZeroQuantity    = errors.New("limitbook: zero quantity resting order")
	ErrLocatorMismatch = errors.New("limitbook: locator out of sync with book")
	ErrLevelAggregate  = errors.New("limitbook: level aggregate quantity mismatch")
)

// CheckInvariants scans the whole book and reports the first broken
// invariant. It is O(n) and meant for tests and diagnostics, never for the
// order-entry path.
func (ob *OrderBook) CheckInvariants() error {
	if bid, ok := ob.BestBid(); ok {
		if ask, ok := ob.BestAsk(); ok && bid >= ask {
			return fmt.Errorf("%w: best bid %d >= best ask %d", ErrCrossedBook, bid, ask)
		}
	}

	seen := 0
	for _, side := range []*sideBook{ob.bids, ob.asks} {
		var err error
		side.ascend(func(lv *priceLevel) bool {
			err = ob.checkLevel(side.side, lv)
			seen += len(lv.orders)
			return err == nil
		})
		if err != nil {
			return err
		}
	}

	if seen != len(ob.locator) {
		return fmt.Errorf("%w: %d resting orders, %d locator entries", ErrLocatorMismatch, seen, len(ob.locator))
	}
	return nil
}

func (ob *OrderBook) checkLevel(side Side, lv *priceLevel) error {
	if lv.empty() {
		return fmt.Errorf("%w: %s %d", ErrEmptyLevel, side, lv.price)
	}
	var total uint64
	for _, o := range lv.orders {
		if o.Quantity == 0 {
			return fmt.Errorf("%w: order %s at %s %d", ErrZeroQuantity, o.ID, side, lv.price)
		}
		if o.Side != side || o.Price != lv.price {
			return fmt.Errorf("%w: order %s (%s %d) stored at %s %d",
				ErrLocatorMismatch, o.ID, o.Side, o.Price, side, lv.price)
		}
		loc, ok := ob.locator.lookup(o.ID)
		if !ok {
			return fmt.Errorf("%w: order %s has no locator entry", ErrLocatorMismatch, o.ID)
		}
		if loc.side != side || loc.price != lv.price {
			return fmt.Errorf("%w: order %s located at %s %d, stored at %s %d",
				ErrLocatorMismatch, o.ID, loc.side, loc.price, side, lv.price)
		}
		total += o.Quantity
	}
	if total != lv.total {
		return fmt.Errorf("%w: level %s %d aggregate %d, orders sum %d",
			ErrLevelAggregate, side, lv.price, lv.total, total)
	}
	return nil
}
