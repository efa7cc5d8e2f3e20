package limitbook

import "slices"

// priceLevel holds the resting orders at one price in arrival order.
// Orders are stored by value; the level is the only owner.
type priceLevel struct {
	price  uint64
	orders []Order
	total  uint64 // sum of orders[i].Quantity
}

func newPriceLevel(price uint64) *priceLevel {
	return &priceLevel{price: price, orders: make([]Order, 0, 4)}
}

// pushBack appends at the tail, behind every order already queued at this price.
func (l *priceLevel) pushBack(o Order) {
	l.orders = append(l.orders, o)
	l.total += o.Quantity
}

// remove takes the order out of the queue wherever it sits.
func (l *priceLevel) remove(id string) (Order, bool) {
	i := slices.IndexFunc(l.orders, func(o Order) bool { return o.ID == id })
	if i < 0 {
		return Order{}, false
	}
	o := l.orders[i]
	l.orders = slices.Delete(l.orders, i, i+1)
	l.total -= o.Quantity
	return o, true
}

// match fills taker against the queue from the head. fill is called once per
// execution with the maker after its quantity was decremented. Fully filled
// makers are dropped from the head in one step after the scan.
func (l *priceLevel) match(taker *Order, fill func(maker Order, qty uint64)) {
	filled := 0
	for i := range l.orders {
		if taker.Quantity == 0 {
			break
		}
		maker := &l.orders[i]
		qty := min(maker.Quantity, taker.Quantity)
		maker.Quantity -= qty
		taker.Quantity -= qty
		l.total -= qty
		fill(*maker, qty)
		if maker.Quantity == 0 {
			filled = i + 1
		}
	}
	if filled > 0 {
		l.orders = slices.Delete(l.orders, 0, filled)
	}
}

func (l *priceLevel) empty() bool {
	return len(l.orders) == 0
}

func (l *priceLevel) summary() LevelSummary {
	return LevelSummary{Price: l.price, Quantity: l.total, Orders: len(l.orders)}
}
