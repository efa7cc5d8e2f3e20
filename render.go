package limitbook

import (
	"bufio"
	"io"
	"strconv"
)

// WriteTrades writes one TRADE line per execution.
func WriteTrades(w io.Writer, trades []Trade) error {
	bw := bufio.NewWriter(w)
	for _, t := range trades {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteSnapshot renders the book as
//
//	SELL:
//	<price> <qty>
//	BUY:
//	<price> <qty>
//
// with both sides listed from the highest price down.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("SELL:\n")
	writeLevels(bw, snap.Asks)
	bw.WriteString("BUY:\n")
	writeLevels(bw, snap.Bids)
	return bw.Flush()
}

func writeLevels(bw *bufio.Writer, levels []LevelSummary) {
	var buf []byte
	for _, lv := range levels {
		buf = strconv.AppendUint(buf[:0], lv.Price, 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, lv.Quantity, 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}
}
