package player

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/hajimehoshi/oto"
	"github.com/soundkit/sfvoice/src/synth"
)

const (
	sampleRate      = 44100
	channelNum      = 2
	bitDepthInBytes = 2
	samplesPerCycle = 1024
	maxPoly         = 64
)
const bytesPerSample = bitDepthInBytes * channelNum
const bufferSizeInBytes = samplesPerCycle * bytesPerSample // should be >= 4096
const masterGain = 0.3

// pushedControllers is the channel state every new voice is brought up to
// date with: modulation, volume, pan, expression and the effects sends.
var pushedControllers = []uint8{1, 7, 10, 11, 91, 93}

// ----- Player ----- //

// Player owns the voice slots and the per-channel controller state, renders
// them into an interleaved 16-bit stereo stream and implements io.Reader so
// an oto player can pull from it. MIDI bytes arrive on MidiCh and are applied
// between renders; Read and the MIDI producer never contend on a lock.
type Player struct {
	sync.Mutex
	ctx        context.Context
	MidiCh     chan []byte
	preset     *Preset
	voices     [maxPoly]*synth.Voice
	nextNoteID uint64
	cc         [128]uint8
	pitchWheel uint16
	sounding   int
}

var _ io.Reader = (*Player)(nil)

// NewPlayer builds a player for one preset. No audio device is opened until
// Start.
func NewPlayer(preset *Preset) *Player {
	p := &Player{
		ctx:        context.Background(),
		MidiCh:     make(chan []byte, 256),
		preset:     preset,
		pitchWheel: 8192,
	}
	p.cc[7] = 100
	p.cc[11] = 127
	return p
}

// NoteOn starts a voice, choking any sounding voice that shares a non-zero
// exclusive class first.
func (p *Player) NoteOn(key, velocity uint8) {
	p.Lock()
	defer p.Unlock()
	p.noteOn(key, velocity)
}

// NoteOff releases every sounding voice struck with key.
func (p *Player) NoteOff(key uint8) {
	p.Lock()
	defer p.Unlock()
	p.noteOff(key)
}

// ControlChange records a controller value and forwards it to every voice.
func (p *Player) ControlChange(cc, value uint8) {
	p.Lock()
	defer p.Unlock()
	p.controlChange(cc, value)
}

// PitchBend forwards a 14-bit pitch wheel position to every voice.
func (p *Player) PitchBend(value uint16) {
	p.Lock()
	defer p.Unlock()
	p.pitchBend(value)
}

func (p *Player) noteOn(key, velocity uint8) {
	if velocity == 0 {
		p.noteOff(key)
		return
	}
	p.nextNoteID++
	v := synth.NewVoice(p.nextNoteID, sampleRate, p.preset.Sample, p.preset.Generators,
		p.preset.Modulators, key, velocity)
	if class := v.ExclusiveClass(); class != 0 {
		for _, w := range p.voices {
			if w != nil && w.IsSounding() && w.ExclusiveClass() == class {
				w.Release()
			}
		}
	}
	for _, cc := range pushedControllers {
		v.UpdateMIDIController(cc, p.cc[cc])
	}
	v.UpdateSFController(synth.CtrlPitchWheel, int16(p.pitchWheel))
	p.voices[p.allocate()] = v
}

// allocate returns a free slot, or steals the oldest voice.
func (p *Player) allocate() int {
	oldest := 0
	var oldestID uint64 = ^uint64(0)
	for i, v := range p.voices {
		if v == nil || !v.IsSounding() {
			return i
		}
		if v.NoteID() < oldestID {
			oldestID = v.NoteID()
			oldest = i
		}
	}
	return oldest
}

func (p *Player) noteOff(key uint8) {
	for _, v := range p.voices {
		if v != nil && v.IsSounding() && v.ActualKey() == key {
			v.Release()
		}
	}
}

func (p *Player) controlChange(cc, value uint8) {
	if cc >= 128 {
		return
	}
	p.cc[cc] = value
	for _, v := range p.voices {
		if v != nil && v.IsSounding() {
			v.UpdateMIDIController(cc, value)
		}
	}
}

func (p *Player) pitchBend(value uint16) {
	p.pitchWheel = value
	for _, v := range p.voices {
		if v != nil && v.IsSounding() {
			v.UpdateSFController(synth.CtrlPitchWheel, int16(value))
		}
	}
}

// HandleMIDI decodes one channel message.
func (p *Player) HandleMIDI(data []byte) {
	if len(data) == 0 {
		return
	}
	p.Lock()
	defer p.Unlock()
	switch data[0] & 0xf0 {
	case 0x80:
		if len(data) >= 2 {
			p.noteOff(data[1])
		}
	case 0x90:
		if len(data) >= 3 {
			p.noteOn(data[1], data[2])
		}
	case 0xb0:
		if len(data) >= 3 {
			p.controlChange(data[1], data[2])
		}
	case 0xd0:
		if len(data) >= 2 {
			for _, v := range p.voices {
				if v != nil && v.IsSounding() {
					v.UpdateSFController(synth.CtrlChannelPressure, int16(data[1]))
				}
			}
		}
	case 0xe0:
		if len(data) >= 3 {
			p.pitchBend(synth.JoinBytes(data[2], data[1]))
		}
	}
}

// Read renders the next chunk of interleaved 16-bit little-endian stereo.
// Buffered MIDI is drained first so control changes land between ticks.
func (p *Player) Read(buf []byte) (int, error) {
	select {
	case <-p.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	for {
		select {
		case data := <-p.MidiCh:
			p.HandleMIDI(data)
			continue
		default:
		}
		break
	}
	p.Lock()
	defer p.Unlock()
	frames := len(buf) / bytesPerSample
	sounding := 0
	for i := 0; i < frames; i++ {
		var sum synth.StereoValue
		for slot, v := range p.voices {
			if v == nil {
				continue
			}
			if !v.IsSounding() {
				p.voices[slot] = nil
				continue
			}
			v.Update()
			sum.Accumulate(v.Render())
		}
		writeFrame(buf, i, sum.Scale(masterGain))
	}
	for _, v := range p.voices {
		if v != nil && v.IsSounding() {
			sounding++
		}
	}
	p.sounding = sounding
	return frames * bytesPerSample, nil
}

// writeFrame clamps and packs one stereo frame. Limiting happens here, at the
// output stage, never inside the voices.
func writeFrame(buf []byte, i int, s synth.StereoValue) {
	l := packSample(s.Left)
	r := packSample(s.Right)
	buf[bytesPerSample*i] = byte(l)
	buf[bytesPerSample*i+1] = byte(l >> 8)
	buf[bytesPerSample*i+2] = byte(r)
	buf[bytesPerSample*i+3] = byte(r >> 8)
}

func packSample(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// Sounding returns the number of live voices after the last render.
func (p *Player) Sounding() int {
	p.Lock()
	defer p.Unlock()
	return p.sounding
}

// Start opens the audio device and streams until ctx is canceled.
func (p *Player) Start(ctx context.Context) error {
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return err
	}
	defer func() {
		if err := otoContext.Close(); err != nil {
			log.Printf("error while closing audio context: %v", err)
		}
	}()
	out := otoContext.NewPlayer()
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("error while closing audio player: %v", err)
		}
	}()
	p.ctx = ctx

	// blocks until cancel
	if _, err := io.CopyBuffer(out, p, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}
