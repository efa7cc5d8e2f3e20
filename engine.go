package limitbook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchEngine owns one OrderBook and applies commands to it on a single
// goroutine, fed through a ring buffer. Run one engine per instrument.
type MatchEngine struct {
	id           string
	instrument   string
	disruptor    *Disruptor
	orderBook    *OrderBook
	eventHandler EventHandler
	log          *zap.Logger

	publishMu sync.Mutex
	running   atomic.Bool
	done      chan struct{}
	wg        sync.WaitGroup
}

type EngineOption func(*MatchEngine)

func WithLogger(log *zap.Logger) EngineOption {
	return func(e *MatchEngine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithBufferSize(size int64) EngineOption {
	return func(e *MatchEngine) {
		e.disruptor = NewDisruptor(size)
	}
}

func WithInstrument(instrument string) EngineOption {
	return func(e *MatchEngine) {
		e.instrument = instrument
	}
}

func NewMatchEngine(handler EventHandler, opts ...EngineOption) *MatchEngine {
	if handler == nil {
		handler = MultiHandler{}
	}
	e := &MatchEngine{
		id:           uuid.NewString(),
		disruptor:    NewDisruptor(defaultBufferSize),
		orderBook:    NewOrderBook(),
		eventHandler: handler,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("engine_id", e.id), zap.String("instrument", e.instrument))
	return e
}

func (e *MatchEngine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.done = make(chan struct{})
	e.wg.Add(1)
	go e.process(e.done)
	e.log.Info("match engine started", zap.Int64("buffer_size", e.disruptor.Size()))
}

// Stop waits until every command published before the call has been applied.
func (e *MatchEngine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.done)
	e.wg.Wait()
	e.log.Info("match engine stopped")
}

func (e *MatchEngine) process(done <-chan struct{}) {
	defer e.wg.Done()
	e.disruptor.Process(done, e.handle)
}

// Submit queues a command; false means the ring is full and the command was dropped.
func (e *MatchEngine) Submit(cmd Command) bool {
	event := &Event{
		Command:   cmd,
		Timestamp: time.Now().UnixNano(),
	}
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	if !e.disruptor.TryPublish(event) {
		e.log.Debug("ring buffer full", zap.String("command", string(cmd.Type)), zap.String("order_id", cmd.ID))
		return false
	}
	return true
}

// SubmitLine parses a text message and queues it.
func (e *MatchEngine) SubmitLine(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return false, err
	}
	return e.Submit(cmd), nil
}

func (e *MatchEngine) handle(event *Event) {
	cmd := event.Command
	outcome := e.orderBook.Apply(cmd)
	e.log.Debug("command applied",
		zap.String("command", string(cmd.Type)),
		zap.String("order_id", cmd.ID),
		zap.Int("trades", len(outcome.Trades)),
		zap.Duration("queued", time.Duration(time.Now().UnixNano()-event.Timestamp)))

	if outcome.Ignored {
		e.log.Debug("order ignored", zap.String("order_id", cmd.ID))
		return
	}

	switch cmd.Type {
	case CommandNew:
		e.handleFills(cmd.Order.ID, cmd.Order.Quantity, outcome)
	case CommandCancel:
		if outcome.Canceled != nil {
			e.eventHandler.OnOrderUpdate(OrderUpdate{
				ID:        outcome.Canceled.ID,
				Status:    OrderStatusCanceled,
				Remaining: outcome.Canceled.Quantity,
			})
		}
	case CommandModify:
		if outcome.Canceled == nil {
			return
		}
		e.eventHandler.OnOrderUpdate(OrderUpdate{
			ID:        cmd.ID,
			Status:    OrderStatusModified,
			Remaining: outcome.Canceled.Quantity,
		})
		e.handleFills(cmd.ID, cmd.Quantity, outcome)
	case CommandPrint:
		if outcome.Snapshot != nil {
			e.eventHandler.OnSnapshot(*outcome.Snapshot)
		}
	}
}

// handleFills reports each trade with the maker's new state, then the state
// of the incoming order.
func (e *MatchEngine) handleFills(id string, quantity uint64, outcome Outcome) {
	remaining := quantity
	for _, trade := range outcome.Trades {
		e.eventHandler.OnTrade(trade)
		status := OrderStatusPartial
		if trade.RestingRemaining == 0 {
			status = OrderStatusFilled
		}
		e.eventHandler.OnOrderUpdate(OrderUpdate{
			ID:        trade.RestingID,
			Status:    status,
			Remaining: trade.RestingRemaining,
		})
		remaining = trade.IncomingRemaining
	}

	update := OrderUpdate{ID: id, Remaining: remaining}
	switch {
	case outcome.Resting != nil && len(outcome.Trades) == 0:
		update.Status = OrderStatusRested
	case outcome.Resting != nil:
		update.Status = OrderStatusPartial
	case remaining == 0 && len(outcome.Trades) > 0:
		update.Status = OrderStatusFilled
	default:
		update.Status = OrderStatusDiscarded
	}
	e.eventHandler.OnOrderUpdate(update)
}
