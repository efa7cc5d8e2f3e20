package limitbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStats_VWAPInPriceUnits(t *testing.T) {
	s := NewStats(decimal.RequireFromString("0.01"))
	s.OnTrade(Trade{RestingPrice: 1000, Quantity: 10})
	s.OnTrade(Trade{RestingPrice: 1010, Quantity: 30})
	s.OnOrderUpdate(OrderUpdate{})
	s.OnSnapshot(Snapshot{})

	sum := s.Summary()
	assert.Equal(t, uint64(2), sum.Trades)
	assert.Equal(t, uint64(40), sum.Volume)
	assert.True(t, sum.Turnover.Equal(decimal.RequireFromString("403")), sum.Turnover.String())
	assert.True(t, sum.VWAP.Equal(decimal.RequireFromString("10.075")), sum.VWAP.String())
	assert.True(t, sum.LastPrice.Equal(decimal.RequireFromString("10.1")), sum.LastPrice.String())
}

func TestStats_EmptySession(t *testing.T) {
	s := NewStats(decimal.Zero)
	sum := s.Summary()
	assert.True(t, sum.VWAP.IsZero())
	assert.True(t, sum.Turnover.IsZero())
	assert.Zero(t, sum.Volume)
}

func TestTrade_NotionalDoesNotOverflow(t *testing.T) {
	tr := Trade{RestingPrice: 1 << 40, Quantity: 1 << 40}
	want := decimal.NewFromInt(1 << 40).Mul(decimal.NewFromInt(1 << 40))
	assert.True(t, tr.Notional().Equal(want))
}
