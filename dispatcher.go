package limitbook

import (
	"bufio"
	"errors"
	"io"

	"go.uber.org/zap"
)

// Dispatcher drives an OrderBook synchronously from text messages and writes
// trades and book prints to out.
type Dispatcher struct {
	book *OrderBook
	out  io.Writer
	log  *zap.Logger
}

func NewDispatcher(book *OrderBook, out io.Writer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{book: book, out: out, log: log}
}

// Dispatch handles one message. Parse errors are returned untouched and leave
// the book as it was.
func (d *Dispatcher) Dispatch(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	outcome := d.book.Apply(cmd)
	if len(outcome.Trades) > 0 {
		if err := WriteTrades(d.out, outcome.Trades); err != nil {
			return err
		}
	}
	if outcome.Snapshot != nil {
		return WriteSnapshot(d.out, *outcome.Snapshot)
	}
	return nil
}

// Run dispatches every line of r. Blank and malformed lines are skipped so a
// bad message never stops order entry; only read and write errors end the run.
func (d *Dispatcher) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		err := d.Dispatch(sc.Text())
		switch {
		case err == nil, errors.Is(err, ErrEmptyCommand):
		case errors.Is(err, ErrMalformedCommand), errors.Is(err, ErrUnknownCommand):
			d.log.Warn("skip message", zap.Int("line", lineNo), zap.String("message", sc.Text()), zap.Error(err))
		default:
			return err
		}
	}
	return sc.Err()
}
