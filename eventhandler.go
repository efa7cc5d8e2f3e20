package limitbook

type EventHandler interface {
	OnTrade(trade Trade)
	OnOrderUpdate(update OrderUpdate)
	OnSnapshot(snap Snapshot)
}

// MultiHandler fans every event out to each handler in order.
type MultiHandler []EventHandler

func (m MultiHandler) OnTrade(trade Trade) {
	for _, h := range m {
		h.OnTrade(trade)
	}
}

func (m MultiHandler) OnOrderUpdate(update OrderUpdate) {
	for _, h := range m {
		h.OnOrderUpdate(update)
	}
}

func (m MultiHandler) OnSnapshot(snap Snapshot) {
	for _, h := range m {
		h.OnSnapshot(snap)
	}
}
