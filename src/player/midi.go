package player

import (
	"context"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ListenToMidiIn opens the first MIDI IN port and forwards raw messages on
// the returned channel until ctx is done. Missing drivers or ports are
// logged, not fatal; the player simply receives no events.
func ListenToMidiIn(ctx context.Context) <-chan []byte {
	ch := make(chan []byte, 65536)
	go func() {
		drv, err := rtmididrv.New()
		if err != nil {
			log.Printf("failed to initialize MIDI driver: %v\n", err)
			return
		}
		defer func() {
			if err := drv.Close(); err != nil {
				log.Printf("failed to close MIDI driver: %v\n", err)
			}
		}()
		ins, err := drv.Ins()
		if err != nil {
			log.Printf("failed to get MIDI IN: %v\n", err)
			return
		}
		if len(ins) == 0 {
			log.Println("WARN: no MIDI IN port")
			return
		}
		in := ins[0]
		if err := in.Open(); err != nil {
			log.Printf("failed to open MIDI IN: %v\n", err)
			return
		}
		log.Println("opened " + in.String())
		defer func() {
			if err := in.Close(); err != nil {
				log.Printf("failed to close MIDI IN: %v\n", err)
			}
		}()
		if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
			ch <- data
		}); err != nil {
			log.Printf("failed to set MIDI listener: %v\n", err)
			return
		}
		defer func() {
			if err := in.StopListening(); err != nil {
				log.Printf("failed to stop listening: %v\n", err)
			}
		}()
		defer close(ch)
		<-ctx.Done()
	}()
	return ch
}
