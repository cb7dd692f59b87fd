// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package display_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/segclock/display"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/gpio/gpiotest"
	"github.com/warthog618/segclock/segment"
	"github.com/warthog618/segclock/shiftreg"
)

type frame struct {
	segments byte
	digit    byte
	at       time.Time
}

type recorder struct {
	mu     sync.Mutex
	clk    clockwork.Clock
	frames []frame
}

func (r *recorder) Send(segments, digit byte) {
	r.mu.Lock()
	r.frames = append(r.frames, frame{segments, digit, r.clk.Now()})
	r.mu.Unlock()
}

func (r *recorder) Frames() []frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]frame(nil), r.frames...)
}

// render runs a Render against a fake clock, advancing it through each dwell.
func render(t *testing.T, m *display.Multiplexer, clk clockwork.FakeClock, value int, dp segment.DecimalPoint) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		m.Render(value, dp)
		close(done)
	}()
	for i := 0; i < segment.NumDigits; i++ {
		clk.BlockUntil(1)
		clk.Advance(m.Dwell())
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Render did not return")
	}
}

func TestNew(t *testing.T) {
	m := display.New(&recorder{})
	assert.Equal(t, display.DefaultDwell, m.Dwell())
	m = display.New(&recorder{}, display.WithDwell(time.Millisecond))
	assert.Equal(t, time.Millisecond, m.Dwell())
}

func TestRender(t *testing.T) {
	e := func(d int) byte { return byte(segment.Encode(d)) }
	dp := func(d int) byte { return byte(segment.Encode(d).WithDecimalPoint()) }
	patterns := []struct {
		name   string
		value  int
		dp     segment.DecimalPoint
		frames [][2]byte
	}{
		{"time", 530, segment.DecimalPoint{Enabled: true, Position: 1},
			[][2]byte{{e(0), 0x01}, {dp(5), 0x02}, {e(3), 0x04}, {e(0), 0x08}}},
		{"voltage", 2750, segment.DecimalPoint{Enabled: true, Position: 0},
			[][2]byte{{dp(2), 0x01}, {e(7), 0x02}, {e(5), 0x04}, {e(0), 0x08}}},
		{"no point", 1234, segment.DecimalPoint{},
			[][2]byte{{e(1), 0x01}, {e(2), 0x02}, {e(3), 0x04}, {e(4), 0x08}}},
		{"truncated", 98765, segment.DecimalPoint{Enabled: true, Position: 3},
			[][2]byte{{e(8), 0x01}, {e(7), 0x02}, {e(6), 0x04}, {dp(5), 0x08}}},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			clk := clockwork.NewFakeClock()
			rec := &recorder{clk: clk}
			m := display.New(rec, display.WithClock(clk))
			start := clk.Now()
			render(t, m, clk, p.value, p.dp)
			ff := rec.Frames()
			require.Len(t, ff, len(p.frames))
			for i, f := range ff {
				assert.Equal(t, p.frames[i][0], f.segments, "segments %d", i)
				assert.Equal(t, p.frames[i][1], f.digit, "digit %d", i)
				// each digit is held for a dwell before the next
				assert.Equal(t, start.Add(time.Duration(i)*display.DefaultDwell), f.at)
			}
			assert.Equal(t, start.Add(4*display.DefaultDwell), clk.Now())
		})
	}
}

func TestBlank(t *testing.T) {
	rec := &recorder{clk: clockwork.NewFakeClock()}
	m := display.New(rec)
	m.Blank()
	ff := rec.Frames()
	require.Len(t, ff, 1)
	assert.Equal(t, byte(0xff), ff[0].segments)
	assert.Equal(t, byte(0), ff[0].digit)
}

func TestRenderShiftRegister(t *testing.T) {
	tr := &gpiotest.Trace{}
	r := shiftreg.New(
		gpiotest.NewLine("latch", tr),
		gpiotest.NewLine("clock", tr),
		gpiotest.NewLine("data", tr))
	clk := clockwork.NewFakeClock()
	m := display.New(r, display.WithClock(clk))
	tr.Reset()
	render(t, m, clk, 530, segment.DecimalPoint{Enabled: true, Position: 1})
	latches := 0
	pulses := 0
	for _, e := range tr.Events() {
		switch {
		case e.Line == "latch" && e.Level == gpio.High:
			latches++
		case e.Line == "clock" && e.Level == gpio.High:
			pulses++
		}
	}
	assert.Equal(t, 4, latches)
	assert.Equal(t, 64, pulses)
}
