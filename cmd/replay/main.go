// Command replay drives a historical NASDAQ ITCH 5.0 file through the
// order book engine, optionally publishing decoded mutations and raw
// frames to Kafka, checkpointing progress to a pebble store, and
// serving a gRPC level stream — the single entrypoint that wires every
// package in this repo together, the way cmd/server/main.go wires the
// teacher's domain, infra, and api packages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"itchbook/api/feedgrpc"
	"itchbook/datasource"
	"itchbook/infra/checkpoint"
	"itchbook/infra/feed"
	"itchbook/infra/tee"
	"itchbook/internal/config"
	"itchbook/internal/xlog"
	"itchbook/itch50"
	"itchbook/ladder"
	"itchbook/orderbook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	date := flag.Int("date", cfg.Replay.Date, "replay date, YYYYMMDD")
	dataRoot := flag.String("data-root", cfg.Replay.DataRoot, "directory containing nasdaq_itch.<date>.dat")
	depth := flag.Int("depth", cfg.Replay.Depth, "ladder depth to print per symbol")
	flag.Parse()
	cfg.Replay.Date = *date
	cfg.Replay.DataRoot = *dataRoot
	cfg.Replay.Depth = *depth

	if cfg.Replay.Date == 0 {
		log.Fatal("replay: -date (or ITCHBOOK_REPLAY_DATE) is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("replay: %v", err)
	}
}

// sessionMidnight returns midnight of date (YYYYMMDD) in America/New_York,
// the zone every ITCH timestamp is implicitly relative to.
func sessionMidnight(date int) (time.Time, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.Time{}, fmt.Errorf("loading America/New_York zoneinfo: %w", err)
	}
	year, month, day := date/10000, date/100%100, date%100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func run(ctx context.Context, cfg *config.Config) error {
	datasource.RootPath = cfg.Replay.DataRoot
	src, err := datasource.Create("nasdaq_itch50", cfg.Replay.Date)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	midnight, err := sessionMidnight(cfg.Replay.Date)
	if err != nil {
		return err
	}

	book := orderbook.NewOrderBook()
	cindex := orderbook.NewCIndex()
	locateMap := orderbook.NewStockLocateMap()

	symbolHandler := itch50.NewSymbolHandler(cindex, locateMap, cfg.Replay.Symbols)
	quoteHandler := itch50.NewQuoteHandler(book, locateMap, func(nanos uint64) time.Time {
		return midnight.Add(time.Duration(nanos))
	})

	var feedPublisher *feed.Publisher
	if cfg.Kafka.FeedEnabled {
		feedPublisher, err = feed.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.FeedTopic)
		if err != nil {
			return fmt.Errorf("starting feed publisher: %w", err)
		}
		defer feedPublisher.Close()
		book.AddListener(feedPublisher)
	}

	var rawTee *tee.Tee
	if cfg.Kafka.TeeEnabled {
		rawTee = tee.New(cfg.Kafka.Brokers, cfg.Kafka.TeeTopic)
		defer rawTee.Close()
	}

	streamID := fmt.Sprintf("nasdaq_itch50/%d", cfg.Replay.Date)
	var cpStore *checkpoint.Store
	start := uint64(0)
	if cfg.Checkpoint.Enabled {
		cpStore, err = checkpoint.Open(cfg.Checkpoint.Dir)
		if err != nil {
			return fmt.Errorf("opening checkpoint store: %w", err)
		}
		defer cpStore.Close()

		if rec, found, err := cpStore.Load(streamID); err == nil && found {
			start = rec.Sequence
			xlog.Infof("resuming %s from sequence %d", streamID, start)
		}
	}
	seq := checkpoint.NewSequencer(start)

	if cfg.GRPC.Enabled {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
		if err != nil {
			return fmt.Errorf("listening on gRPC port: %w", err)
		}
		gs := grpc.NewServer()
		feedgrpc.Register(gs, feedgrpc.NewServer(book))
		go func() {
			xlog.Infof("feedgrpc listening on :%d", cfg.GRPC.Port)
			if err := gs.Serve(lis); err != nil {
				xlog.Errorf("grpc server exited: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			gs.GracefulStop()
		}()
	}

	for src.HasMessage() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame := src.NextMessage()

		result := itch50.ParseMessage(frame, symbolHandler)
		if result == itch50.Success {
			itch50.ParseMessage(frame, quoteHandler)
		} else {
			xlog.Warnf("parse failure %s for frame starting 0x%02x", result, frame[0])
		}

		if rawTee != nil {
			locate := uint16(frame[1])<<8 | uint16(frame[2])
			if err := rawTee.Write(ctx, locate, frame); err != nil {
				xlog.Warnf("tee write failed: %v", err)
			}
		}

		seq.Next()
		if cpStore != nil && seq.Current()%100_000 == 0 {
			if err := cpStore.Save(streamID, checkpoint.Record{Sequence: seq.Current()}); err != nil {
				xlog.Warnf("checkpoint save failed: %v", err)
			}
		}

		src.Advance()
	}

	for cid := 0; cid < cindex.Len(); cid++ {
		for _, line := range ladder.PrintLevels(book, orderbook.CID(cid), cfg.Replay.Depth) {
			fmt.Println(line)
		}
	}

	if cpStore != nil {
		_ = cpStore.Save(streamID, checkpoint.Record{Sequence: seq.Current()})
	}
	return nil
}
