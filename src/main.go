package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soundkit/sfvoice/src/player"
	"golang.org/x/sync/errgroup"
)

func main() {
	presetPath := flag.String("preset", "", "JSON preset file")
	demo := flag.Bool("demo", false, "play a scripted phrase instead of waiting for MIDI")
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	preset := player.DefaultPreset()
	if *presetPath != "" {
		var err error
		preset, err = player.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
	}
	log.Printf("preset: %s\n", preset.Name)
	p := player.NewPlayer(preset)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Start(ctx)
	})
	g.Go(func() error {
		return pumpMidi(ctx, p)
	})
	if *demo {
		g.Go(func() error {
			return playDemo(ctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func pumpMidi(ctx context.Context, p *player.Player) error {
	in := player.ListenToMidiIn(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("pumpMidi() ended.")
			return nil
		case data, ok := <-in:
			if !ok {
				<-ctx.Done()
				return nil
			}
			p.MidiCh <- data
		}
	}
}

func playDemo(ctx context.Context, p *player.Player) error {
	notes := []uint8{60, 64, 67, 72, 67, 64}
	t := time.NewTicker(300 * time.Millisecond)
	defer t.Stop()
	i := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			key := notes[i%len(notes)]
			p.MidiCh <- []byte{0x90, key, 100}
			if i > 0 {
				p.MidiCh <- []byte{0x80, notes[(i-1)%len(notes)], 0}
			}
			i++
		}
	}
}
