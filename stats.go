package limitbook

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Stats accumulates session trade statistics. Prices are converted from
// ticks with TickSize; reads are safe from any goroutine.
type Stats struct {
	mu        sync.RWMutex
	tickSize  decimal.Decimal
	trades    uint64
	volume    uint64
	turnover  decimal.Decimal // in ticks
	lastPrice uint64
}

type StatsSummary struct {
	Trades    uint64
	Volume    uint64
	Turnover  decimal.Decimal
	VWAP      decimal.Decimal
	LastPrice decimal.Decimal
}

func NewStats(tickSize decimal.Decimal) *Stats {
	if tickSize.Sign() <= 0 {
		tickSize = decimal.NewFromInt(1)
	}
	return &Stats{tickSize: tickSize, turnover: decimal.Zero}
}

func (s *Stats) OnTrade(trade Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades++
	s.volume += trade.Quantity
	s.turnover = s.turnover.Add(trade.Notional())
	s.lastPrice = trade.RestingPrice
}

func (s *Stats) OnOrderUpdate(OrderUpdate) {}

func (s *Stats) OnSnapshot(Snapshot) {}

func (s *Stats) Summary() StatsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := StatsSummary{
		Trades:    s.trades,
		Volume:    s.volume,
		Turnover:  s.turnover.Mul(s.tickSize),
		VWAP:      decimal.Zero,
		LastPrice: decimalFromUint(s.lastPrice).Mul(s.tickSize),
	}
	if s.volume > 0 {
		sum.VWAP = s.turnover.Div(decimalFromUint(s.volume)).Mul(s.tickSize)
	}
	return sum
}
