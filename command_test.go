package limitbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  error
	}{
		{
			line: "BUY GFD 10 200 order2",
			want: Command{Type: CommandNew, ID: "order2", Order: NewOrder(Buy, GoodForDay, 10, 200, "order2")},
		},
		{
			line: "SELL IOC 7 3 s1",
			want: Command{Type: CommandNew, ID: "s1", Order: NewOrder(Sell, ImmediateOrCancel, 7, 3, "s1")},
		},
		{
			line: "  SELL   FOK 7 3 s1 ",
			want: Command{Type: CommandNew, ID: "s1", Order: NewOrder(Sell, ImmediateOrCancel, 7, 3, "s1")},
		},
		{
			line: "MODIFY order2 SELL 10 1000",
			want: Command{Type: CommandModify, ID: "order2", Side: Sell, Price: 10, Quantity: 1000},
		},
		{line: "CANCEL order1", want: Command{Type: CommandCancel, ID: "order1"}},
		{line: "PRINT", want: Command{Type: CommandPrint}},
		{line: "", err: ErrEmptyCommand},
		{line: "   ", err: ErrEmptyCommand},
		{line: "HELLO world", err: ErrUnknownCommand},
		{line: "buy GFD 10 200 order2", err: ErrUnknownCommand},
		{line: "BUY GFD 10 200", err: ErrMalformedCommand},
		{line: "BUY GFD ten 200 x", err: ErrMalformedCommand},
		{line: "BUY GFD 10 -5 x", err: ErrMalformedCommand},
		{line: "MODIFY order2 HOLD 10 1000", err: ErrMalformedCommand},
		{line: "MODIFY order2 SELL 10", err: ErrMalformedCommand},
		{line: "CANCEL", err: ErrMalformedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_ReportsOutcome(t *testing.T) {
	ob := NewOrderBook()

	out := ob.Apply(mustParse(t, "BUY GFD 10 5 b1"))
	require.NotNil(t, out.Resting)
	assert.Equal(t, uint64(5), out.Resting.Quantity)

	out = ob.Apply(mustParse(t, "BUY GFD 11 5 b1"))
	assert.True(t, out.Ignored)

	out = ob.Apply(mustParse(t, "MODIFY b1 SELL 10 8"))
	require.NotNil(t, out.Canceled)
	assert.Equal(t, Buy, out.Canceled.Side)
	require.NotNil(t, out.Resting)
	assert.Equal(t, Sell, out.Resting.Side)

	out = ob.Apply(mustParse(t, "SELL IOC 3 2 s1"))
	assert.Empty(t, out.Trades)
	assert.Nil(t, out.Resting)
	assert.False(t, out.Ignored)

	out = ob.Apply(mustParse(t, "CANCEL b1"))
	require.NotNil(t, out.Canceled)
	assert.Equal(t, uint64(8), out.Canceled.Quantity)

	assert.Equal(t, Outcome{}, ob.Apply(mustParse(t, "CANCEL b1")))

	out = ob.Apply(mustParse(t, "PRINT"))
	require.NotNil(t, out.Snapshot)
	assert.Empty(t, out.Snapshot.Asks)
	require.NoError(t, ob.CheckInvariants())
}

func mustParse(t *testing.T, line string) Command {
	t.Helper()
	cmd, err := ParseCommand(line)
	require.NoError(t, err)
	return cmd
}

func TestDispatcher_Run(t *testing.T) {
	input := strings.Join([]string{
		"BUY GFD 11 100 order1",
		"BUY GFD 10 200 order2",
		"",
		"MODIFY order2 SELL 10 1000",
		"BUY GFD oops 1 bad",
		"SELL GFD 12 5 order3",
		"CANCEL order3",
		"CANCEL nobody",
		"PRINT",
	}, "\n")

	core, logs := observer.New(zap.WarnLevel)
	var out bytes.Buffer
	d := NewDispatcher(NewOrderBook(), &out, zap.New(core))
	require.NoError(t, d.Run(strings.NewReader(input)))

	assert.Equal(t, "TRADE order1 11 100 order2 10 100\nSELL:\n10 900\nBUY:\n", out.String())

	entries := logs.FilterMessage("skip message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ContextMap()["line"])
}

func TestDispatcher_DispatchReturnsParseErrors(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(NewOrderBook(), &out, nil)

	require.NoError(t, d.Dispatch("BUY GFD 10 200 order2"))
	require.NoError(t, d.Dispatch("SELL GFD 10 100 order3"))
	assert.ErrorIs(t, d.Dispatch("SELL GFD"), ErrMalformedCommand)
	require.NoError(t, d.Dispatch("PRINT"))

	assert.Equal(t, "TRADE order2 10 100 order3 10 100\nSELL:\nBUY:\n10 100\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestDispatcher_RunStopsOnWriteError(t *testing.T) {
	d := NewDispatcher(NewOrderBook(), failingWriter{}, nil)
	err := d.Run(strings.NewReader("PRINT\nBUY GFD 1 1 a\n"))
	assert.EqualError(t, err, "closed")
}
