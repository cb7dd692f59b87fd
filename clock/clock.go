// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the elapsed time counter shown by the display.
package clock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTick is the period between Advances when the Keeper is Run.
const DefaultTick = time.Second

// State is the elapsed time, in minutes and seconds.
type State struct {
	Minutes int
	Seconds int
}

// Packed returns the state as a four digit MMSS value.
func (s State) Packed() int {
	return s.Minutes*100 + s.Seconds
}

func (s State) String() string {
	return fmt.Sprintf("%02d:%02d", s.Minutes, s.Seconds)
}

// Keeper counts elapsed seconds, wrapping at 99:59.
//
// The state is updated as a whole, so a Reset cannot interleave with an
// Advance, and a Snapshot is never torn.
type Keeper struct {
	mu    sync.Mutex
	state State
}

// New creates a Keeper at 00:00.
func New() *Keeper {
	return &Keeper{}
}

// Advance adds a second to the elapsed time.
func (k *Keeper) Advance() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state.Seconds++
	if k.state.Seconds >= 60 {
		k.state.Seconds = 0
		k.state.Minutes++
		if k.state.Minutes >= 100 {
			k.state.Minutes = 0
		}
	}
}

// Reset returns the elapsed time to 00:00.
func (k *Keeper) Reset() {
	k.mu.Lock()
	k.state = State{}
	k.mu.Unlock()
}

// Snapshot returns the current elapsed time.
func (k *Keeper) Snapshot() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Run advances the Keeper once per period of clk until ctx is done.
func (k *Keeper) Run(ctx context.Context, clk clockwork.Clock, period time.Duration) {
	t := clk.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.Chan():
			k.Advance()
		case <-ctx.Done():
			return
		}
	}
}
