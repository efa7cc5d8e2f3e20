package limitbook

// location is everything needed to find a resting order: which side book
// and which level. It never points into the book itself.
type location struct {
	side  Side
	price uint64
}

type locator map[string]location

func (l locator) add(o Order) {
	l[o.ID] = location{side: o.Side, price: o.Price}
}

func (l locator) lookup(id string) (location, bool) {
	loc, ok := l[id]
	return loc, ok
}

func (l locator) remove(id string) {
	delete(l, id)
}
