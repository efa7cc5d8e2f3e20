package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/huangsc/limitbook"
	"go.uber.org/zap"
)

var demoMessages = []string{
	"BUY GFD 11 100 order1",
	"BUY GFD 10 200 order2",
	"MODIFY order2 SELL 10 1000",
	"PRINT",
}

type ExampleHandler struct {
	out io.Writer
}

func (h *ExampleHandler) OnTrade(trade limitbook.Trade) {
	limitbook.WriteTrades(h.out, []limitbook.Trade{trade})
}

func (h *ExampleHandler) OnOrderUpdate(limitbook.OrderUpdate) {}

func (h *ExampleHandler) OnSnapshot(snap limitbook.Snapshot) {
	limitbook.WriteSnapshot(h.out, snap)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	demo := flag.Bool("demo", false, "replay the built-in demo instead of reading stdin")
	sync := flag.Bool("sync", false, "dispatch on the calling goroutine instead of the engine")
	flag.Parse()

	cfg, err := limitbook.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	tick, _ := cfg.Tick()

	logger := limitbook.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	var in io.Reader = os.Stdin
	if *demo {
		in = strings.NewReader(strings.Join(demoMessages, "\n"))
	}

	if *sync {
		d := limitbook.NewDispatcher(limitbook.NewOrderBook(), os.Stdout, logger)
		if err := d.Run(in); err != nil {
			logger.Fatal("dispatch", zap.Error(err))
		}
		return
	}

	stats := limitbook.NewStats(tick)
	engine := limitbook.NewMatchEngine(
		limitbook.MultiHandler{&ExampleHandler{out: os.Stdout}, stats},
		limitbook.WithLogger(logger),
		limitbook.WithBufferSize(cfg.BufferSize),
		limitbook.WithInstrument(cfg.Instrument),
	)
	engine.Start()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := limitbook.ParseCommand(line)
		if err != nil {
			logger.Warn("skip message", zap.String("message", line), zap.Error(err))
			continue
		}
		for !engine.Submit(cmd) {
			runtime.Gosched()
		}
	}
	engine.Stop()

	sum := stats.Summary()
	logger.Info("session summary",
		zap.Uint64("trades", sum.Trades),
		zap.Uint64("volume", sum.Volume),
		zap.String("vwap", sum.VWAP.String()),
		zap.String("turnover", sum.Turnover.String()))
}
