// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/warthog618/segclock/clock"
)

func advance(k *clock.Keeper, n int) {
	for i := 0; i < n; i++ {
		k.Advance()
	}
}

func TestNew(t *testing.T) {
	k := clock.New()
	assert.Equal(t, clock.State{}, k.Snapshot())
}

func TestAdvance(t *testing.T) {
	patterns := []struct {
		name  string
		ticks int
		state clock.State
	}{
		{"one", 1, clock.State{Seconds: 1}},
		{"59", 59, clock.State{Seconds: 59}},
		{"minute", 60, clock.State{Minutes: 1}},
		{"61", 61, clock.State{Minutes: 1, Seconds: 1}},
		{"99:59", 5999, clock.State{Minutes: 99, Seconds: 59}},
		{"wrap", 6000, clock.State{}},
		{"wrap plus", 6061, clock.State{Minutes: 1, Seconds: 1}},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			k := clock.New()
			advance(k, p.ticks)
			assert.Equal(t, p.state, k.Snapshot())
		})
	}
}

func TestReset(t *testing.T) {
	k := clock.New()
	advance(k, 12*60+45)
	assert.Equal(t, clock.State{Minutes: 12, Seconds: 45}, k.Snapshot())
	k.Reset()
	assert.Equal(t, clock.State{}, k.Snapshot())
	k.Advance()
	assert.Equal(t, clock.State{Seconds: 1}, k.Snapshot())
}

func TestState(t *testing.T) {
	s := clock.State{Minutes: 5, Seconds: 30}
	assert.Equal(t, 530, s.Packed())
	assert.Equal(t, "05:30", s.String())
	assert.Equal(t, 9959, clock.State{Minutes: 99, Seconds: 59}.Packed())
}

func TestConcurrentReset(t *testing.T) {
	k := clock.New()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		advance(k, 10000)
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			k.Reset()
			s := k.Snapshot()
			assert.True(t, s.Seconds >= 0 && s.Seconds < 60)
			assert.True(t, s.Minutes >= 0 && s.Minutes < 100)
		}
	}()
	wg.Wait()
}

func TestRun(t *testing.T) {
	k := clock.New()
	clk := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		k.Run(ctx, clk, clock.DefaultTick)
		close(done)
	}()
	for i := 1; i <= 3; i++ {
		clk.BlockUntil(1)
		clk.Advance(clock.DefaultTick)
		assert.Eventually(t, func() bool {
			return k.Snapshot() == clock.State{Seconds: i}
		}, time.Second, time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, clock.State{Seconds: 3}, k.Snapshot())
}
