package limitbook

import "github.com/prometheus/client_golang/prometheus"

// MetricsHandler exports engine events as Prometheus metrics.
type MetricsHandler struct {
	trades       prometheus.Counter
	matchedQty   prometheus.Counter
	orderUpdates *prometheus.CounterVec
	levels       *prometheus.GaugeVec
}

func NewMetricsHandler(reg prometheus.Registerer, instrument string) *MetricsHandler {
	constLabels := prometheus.Labels{"instrument": instrument}
	m := &MetricsHandler{
		trades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "limitbook",
			Name:        "trades_total",
			Help:        "Executions produced by the matcher.",
			ConstLabels: constLabels,
		}),
		matchedQty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "limitbook",
			Name:        "matched_quantity_total",
			Help:        "Quantity executed across all trades.",
			ConstLabels: constLabels,
		}),
		orderUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "limitbook",
			Name:        "order_updates_total",
			Help:        "Order state changes by status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		levels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "limitbook",
			Name:        "book_levels",
			Help:        "Price levels per side at the last book print.",
			ConstLabels: constLabels,
		}, []string{"side"}),
	}
	reg.MustRegister(m.trades, m.matchedQty, m.orderUpdates, m.levels)
	return m
}

func (m *MetricsHandler) OnTrade(trade Trade) {
	m.trades.Inc()
	m.matchedQty.Add(float64(trade.Quantity))
}

func (m *MetricsHandler) OnOrderUpdate(update OrderUpdate) {
	m.orderUpdates.WithLabelValues(string(update.Status)).Inc()
}

func (m *MetricsHandler) OnSnapshot(snap Snapshot) {
	m.levels.WithLabelValues("sell").Set(float64(len(snap.Asks)))
	m.levels.WithLabelValues("buy").Set(float64(len(snap.Bids)))
}
