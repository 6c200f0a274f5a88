package player

import (
	"testing"

	"github.com/soundkit/sfvoice/src/synth"
)

func readFrames(t *testing.T, p *Player, chunks int) []byte {
	t.Helper()
	buf := make([]byte, bufferSizeInBytes)
	for i := 0; i < chunks; i++ {
		if _, err := p.Read(buf); err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	return buf
}

func TestPlayerNoteLifecycle(t *testing.T) {
	p := NewPlayer(DefaultPreset())
	readFrames(t, p, 1)
	if p.Sounding() != 0 {
		t.Fatalf("silent player reports %d voices", p.Sounding())
	}
	p.NoteOn(60, 100)
	buf := readFrames(t, p, 2)
	if p.Sounding() != 1 {
		t.Fatalf("expected 1 voice, got %d", p.Sounding())
	}
	silent := true
	for _, b := range buf {
		if b != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("expected audio after note on")
	}

	p.NoteOff(60)
	// the release tail decays within a second
	for i := 0; i < 50 && p.Sounding() > 0; i++ {
		readFrames(t, p, 1)
	}
	if p.Sounding() != 0 {
		t.Errorf("voice did not decay after note off: %d sounding", p.Sounding())
	}
}

func TestPlayerExclusiveClassChoking(t *testing.T) {
	preset := DefaultPreset()
	preset.Generators.Set(synth.GenExclusiveClass, 1)
	p := NewPlayer(preset)
	p.NoteOn(60, 100)
	readFrames(t, p, 1)
	p.NoteOn(64, 100)
	// the first voice was released by the choke and decays out; the held
	// voice remains
	for i := 0; i < 50 && p.Sounding() > 1; i++ {
		readFrames(t, p, 1)
	}
	if p.Sounding() != 1 {
		t.Errorf("expected the choked voice to decay, got %d sounding", p.Sounding())
	}
}

func TestPlayerHandleMIDI(t *testing.T) {
	p := NewPlayer(DefaultPreset())
	p.HandleMIDI([]byte{0x90, 72, 90})
	readFrames(t, p, 1)
	if p.Sounding() != 1 {
		t.Fatalf("note on not decoded: %d sounding", p.Sounding())
	}
	p.HandleMIDI([]byte{0xb0, 7, 64})   // channel volume
	p.HandleMIDI([]byte{0xe0, 0, 0x50}) // pitch bend
	readFrames(t, p, 1)
	if p.Sounding() != 1 {
		t.Fatalf("controller messages must not kill the voice")
	}
	p.HandleMIDI([]byte{0x80, 72, 0})
	for i := 0; i < 50 && p.Sounding() > 0; i++ {
		readFrames(t, p, 1)
	}
	if p.Sounding() != 0 {
		t.Errorf("note off not decoded: %d sounding", p.Sounding())
	}
}

func TestPlayerBufferedMIDIAppliesBetweenReads(t *testing.T) {
	p := NewPlayer(DefaultPreset())
	p.MidiCh <- []byte{0x90, 60, 100}
	readFrames(t, p, 1)
	if p.Sounding() != 1 {
		t.Errorf("buffered event not applied on Read: %d sounding", p.Sounding())
	}
}

func TestPlayerVoiceStealing(t *testing.T) {
	p := NewPlayer(DefaultPreset())
	for i := 0; i < maxPoly+8; i++ {
		p.NoteOn(uint8(24+i), 100)
	}
	readFrames(t, p, 1)
	if p.Sounding() != maxPoly {
		t.Errorf("expected %d voices after stealing, got %d", maxPoly, p.Sounding())
	}
}
