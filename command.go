package limitbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyCommand     = errors.New("limitbook: empty command")
	ErrUnknownCommand   = errors.New("limitbook: unknown command")
	ErrMalformedCommand = errors.New("limitbook: malformed command")
)

type CommandType string

const (
	CommandNew    CommandType = "new"
	CommandCancel CommandType = "cancel"
	CommandModify CommandType = "modify"
	CommandPrint  CommandType = "print"
)

// Command is one parsed order-entry message.
// Order is set for new orders; ID, Side, Price and Quantity for modify; ID for cancel.
type Command struct {
	Type     CommandType
	Order    Order
	ID       string
	Side     Side
	Price    uint64
	Quantity uint64
}

// ParseCommand reads one whitespace-delimited message:
//
//	BUY|SELL <TimeInForce> <Price> <Quantity> <OrderID>
//	MODIFY <OrderID> BUY|SELL <Price> <Quantity>
//	CANCEL <OrderID>
//	PRINT
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, ErrEmptyCommand
	}

	switch tokens[0] {
	case "BUY", "SELL":
		if len(tokens) != 5 {
			return Command{}, fmt.Errorf("%w: %s wants 5 fields, got %d", ErrMalformedCommand, tokens[0], len(tokens))
		}
		side, _ := ParseSide(tokens[0])
		price, err := parseUint("price", tokens[2])
		if err != nil {
			return Command{}, err
		}
		qty, err := parseUint("quantity", tokens[3])
		if err != nil {
			return Command{}, err
		}
		order := NewOrder(side, ParseTimeInForce(tokens[1]), price, qty, tokens[4])
		return Command{Type: CommandNew, Order: order, ID: order.ID}, nil

	case "MODIFY":
		if len(tokens) != 5 {
			return Command{}, fmt.Errorf("%w: MODIFY wants 5 fields, got %d", ErrMalformedCommand, len(tokens))
		}
		side, ok := ParseSide(tokens[2])
		if !ok {
			return Command{}, fmt.Errorf("%w: side %q", ErrMalformedCommand, tokens[2])
		}
		price, err := parseUint("price", tokens[3])
		if err != nil {
			return Command{}, err
		}
		qty, err := parseUint("quantity", tokens[4])
		if err != nil {
			return Command{}, err
		}
		return Command{Type: CommandModify, ID: tokens[1], Side: side, Price: price, Quantity: qty}, nil

	case "CANCEL":
		if len(tokens) != 2 {
			return Command{}, fmt.Errorf("%w: CANCEL wants 2 fields, got %d", ErrMalformedCommand, len(tokens))
		}
		return Command{Type: CommandCancel, ID: tokens[1]}, nil

	case "PRINT":
		return Command{Type: CommandPrint}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
}

func parseUint(field, token string) (uint64, error) {
	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrMalformedCommand, field, token, err)
	}
	return v, nil
}

// Outcome is what applying one command produced.
type Outcome struct {
	Trades []Trade
	// Canceled is the order a cancel or modify took off the book.
	Canceled *Order
	// Resting is the order left on the book by a new order or modify.
	Resting  *Order
	Snapshot *Snapshot
	// Ignored marks a new order the book refused: zero quantity, bad side or
	// an id that is already resting.
	Ignored bool
}

func (ob *OrderBook) Apply(cmd Command) Outcome {
	switch cmd.Type {
	case CommandNew:
		if !ob.accepts(cmd.Order) {
			return Outcome{Ignored: true}
		}
		out := Outcome{Trades: ob.Submit(cmd.Order)}
		out.Resting = ob.resting(cmd.Order.ID)
		return out
	case CommandCancel:
		if o, ok := ob.Cancel(cmd.ID); ok {
			return Outcome{Canceled: &o}
		}
	case CommandModify:
		if prev, trades, ok := ob.modify(cmd.ID, cmd.Side, cmd.Price, cmd.Quantity); ok {
			return Outcome{Trades: trades, Canceled: &prev, Resting: ob.resting(cmd.ID)}
		}
	case CommandPrint:
		snap := ob.Snapshot()
		return Outcome{Snapshot: &snap}
	}
	return Outcome{}
}

func (ob *OrderBook) resting(id string) *Order {
	if o, ok := ob.Order(id); ok {
		return &o
	}
	return nil
}
