package limitbook

// OrderBook is a single-instrument limit order book with price-time priority.
// It is not safe for concurrent use; one goroutine owns a book.
type OrderBook struct {
	bids    *sideBook
	asks    *sideBook
	locator locator
	seq     uint64
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:    newSideBook(Buy),
		asks:    newSideBook(Sell),
		locator: make(locator, 1024),
	}
}

func (ob *OrderBook) book(side Side) *sideBook {
	if side == Buy {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) SubmitBuy(order Order) []Trade {
	order.Side = Buy
	return ob.Submit(order)
}

func (ob *OrderBook) SubmitSell(order Order) []Trade {
	order.Side = Sell
	return ob.Submit(order)
}

// Submit matches order against the opposite side and rests any GFD remainder.
// Orders with zero quantity, an unknown side, or an id that is already
// resting are ignored.
func (ob *OrderBook) Submit(order Order) []Trade {
	if !ob.accepts(order) {
		return nil
	}

	trades := ob.match(&order)

	if order.Quantity > 0 && order.TimeInForce == GoodForDay {
		ob.book(order.Side).getOrCreate(order.Price).pushBack(order)
		ob.locator.add(order)
	}
	return trades
}

func (ob *OrderBook) accepts(order Order) bool {
	if order.Quantity == 0 || (order.Side != Buy && order.Side != Sell) {
		return false
	}
	_, exists := ob.locator.lookup(order.ID)
	return !exists
}

func (ob *OrderBook) match(taker *Order) []Trade {
	var trades []Trade
	opposite := ob.book(taker.Side.Opposite())

	var exhausted []uint64
	opposite.ascend(func(lv *priceLevel) bool {
		if !opposite.crosses(taker.Price, lv.price) {
			return false
		}
		lv.match(taker, func(maker Order, qty uint64) {
			ob.seq++
			trades = append(trades, Trade{
				Seq:           ob.seq,
				RestingID:     maker.ID,
				RestingPrice:  maker.Price,
				IncomingID:    taker.ID,
				IncomingPrice: taker.Price,
				IncomingSide:  taker.Side,
				Quantity:      qty,

				RestingRemaining:  maker.Quantity,
				IncomingRemaining: taker.Quantity,
			})
			if maker.Quantity == 0 {
				ob.locator.remove(maker.ID)
			}
		})
		if lv.empty() {
			exhausted = append(exhausted, lv.price)
		}
		return taker.Quantity > 0
	})

	// the tree cannot be mutated while it is being walked
	for _, price := range exhausted {
		opposite.delete(price)
	}
	return trades
}

// Cancel removes a resting order and returns it. Unknown ids are a no-op.
func (ob *OrderBook) Cancel(id string) (Order, bool) {
	return ob.retrieve(id)
}

// Modify replaces side, price and quantity of a resting order and resubmits
// it, keeping its id and time in force. The order loses its time priority and
// may trade immediately. Unknown ids are a no-op.
func (ob *OrderBook) Modify(id string, side Side, price, quantity uint64) []Trade {
	_, trades, _ := ob.modify(id, side, price, quantity)
	return trades
}

func (ob *OrderBook) modify(id string, side Side, price, quantity uint64) (Order, []Trade, bool) {
	if side != Buy && side != Sell {
		return Order{}, nil, false
	}
	prev, ok := ob.retrieve(id)
	if !ok {
		return Order{}, nil, false
	}
	order := prev
	order.Side = side
	order.Price = price
	order.Quantity = quantity
	return prev, ob.Submit(order), true
}

// retrieve removes the order from its level, the level from its side if it
// became empty, and the locator entry.
func (ob *OrderBook) retrieve(id string) (Order, bool) {
	loc, ok := ob.locator.lookup(id)
	if !ok {
		return Order{}, false
	}
	ob.locator.remove(id)

	side := ob.book(loc.side)
	lv, ok := side.get(loc.price)
	if !ok {
		return Order{}, false
	}
	order, ok := lv.remove(id)
	if lv.empty() {
		side.delete(loc.price)
	}
	return order, ok
}

// Order returns a copy of a resting order.
func (ob *OrderBook) Order(id string) (Order, bool) {
	loc, ok := ob.locator.lookup(id)
	if !ok {
		return Order{}, false
	}
	lv, ok := ob.book(loc.side).get(loc.price)
	if !ok {
		return Order{}, false
	}
	for _, o := range lv.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (ob *OrderBook) BestBid() (uint64, bool) {
	lv, ok := ob.bids.best()
	if !ok {
		return 0, false
	}
	return lv.price, true
}

func (ob *OrderBook) BestAsk() (uint64, bool) {
	lv, ok := ob.asks.best()
	if !ok {
		return 0, false
	}
	return lv.price, true
}

// Spread is best ask minus best bid; ok is false when either side is empty.
func (ob *OrderBook) Spread() (uint64, bool) {
	bid, ok := ob.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := ob.BestAsk()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

// Len is the number of resting orders.
func (ob *OrderBook) Len() int {
	return len(ob.locator)
}

// Depth returns up to n levels of one side, best first. n <= 0 means all levels.
func (ob *OrderBook) Depth(side Side, n int) []LevelSummary {
	levels := make([]LevelSummary, 0)
	if side != Buy && side != Sell {
		return levels
	}
	ob.book(side).ascend(func(lv *priceLevel) bool {
		levels = append(levels, lv.summary())
		return n <= 0 || len(levels) < n
	})
	return levels
}

// Snapshot aggregates both sides by price, each in descending price order.
func (ob *OrderBook) Snapshot() Snapshot {
	snap := Snapshot{
		Asks: make([]LevelSummary, 0, ob.asks.len()),
		Bids: make([]LevelSummary, 0, ob.bids.len()),
	}
	ob.asks.descendingPrices(func(lv *priceLevel) bool {
		snap.Asks = append(snap.Asks, lv.summary())
		return true
	})
	ob.bids.descendingPrices(func(lv *priceLevel) bool {
		snap.Bids = append(snap.Bids, lv.summary())
		return true
	})
	return snap
}
