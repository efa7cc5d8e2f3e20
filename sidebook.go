package limitbook

import "github.com/google/btree"

const priceLevelsBTreeDegree = 32

// sideBook orders the price levels of one side so that the best price is
// always the minimum of the tree: bids high to low, asks low to high.
type sideBook struct {
	side   Side
	levels *btree.BTreeG[*priceLevel]
}

func newSideBook(side Side) *sideBook {
	less := func(a, b *priceLevel) bool { return a.price < b.price }
	if side == Buy {
		less = func(a, b *priceLevel) bool { return a.price > b.price }
	}
	return &sideBook{
		side:   side,
		levels: btree.NewG(priceLevelsBTreeDegree, less),
	}
}

func (s *sideBook) get(price uint64) (*priceLevel, bool) {
	return s.levels.Get(&priceLevel{price: price})
}

func (s *sideBook) getOrCreate(price uint64) *priceLevel {
	if lv, ok := s.get(price); ok {
		return lv
	}
	lv := newPriceLevel(price)
	s.levels.ReplaceOrInsert(lv)
	return lv
}

func (s *sideBook) delete(price uint64) {
	s.levels.Delete(&priceLevel{price: price})
}

func (s *sideBook) best() (*priceLevel, bool) {
	return s.levels.Min()
}

// crosses reports whether an incoming order at price can trade with a
// level of this side at levelPrice.
func (s *sideBook) crosses(price, levelPrice uint64) bool {
	if s.side == Sell {
		return price >= levelPrice
	}
	return price <= levelPrice
}

// ascend walks levels best to worst until fn returns false.
func (s *sideBook) ascend(fn func(lv *priceLevel) bool) {
	s.levels.Ascend(btree.ItemIteratorG[*priceLevel](fn))
}

// descendingPrices walks levels from the highest price to the lowest.
func (s *sideBook) descendingPrices(fn func(lv *priceLevel) bool) {
	if s.side == Buy {
		s.levels.Ascend(btree.ItemIteratorG[*priceLevel](fn))
		return
	}
	s.levels.Descend(btree.ItemIteratorG[*priceLevel](fn))
}

func (s *sideBook) len() int {
	return s.levels.Len()
}
