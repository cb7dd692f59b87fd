// Copyright © 2024 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package periphio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/warthog618/segclock/control"
	"github.com/warthog618/segclock/gpio"
	"github.com/warthog618/segclock/periphio"
	"github.com/warthog618/segclock/shiftreg"
)

func TestLine(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO22", Num: 22}
	l := periphio.New(p)
	assert.Equal(t, "GPIO22", l.Name())

	l.Write(gpio.High)
	assert.Equal(t, pgpio.High, p.L)
	assert.Equal(t, gpio.High, l.Read())
	l.Write(gpio.Low)
	assert.Equal(t, pgpio.Low, p.L)
	assert.Equal(t, gpio.Low, l.Read())

	l.Output()
	assert.Equal(t, pgpio.Low, p.L)
	l.Input()
	assert.Equal(t, pgpio.PullNoChange, p.P)
	assert.Nil(t, l.Err())
	assert.Nil(t, l.Halt())
}

func TestPullUp(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO23", Num: 23}
	b := control.NewButton(periphio.New(p))
	assert.Equal(t, pgpio.PullUp, p.P)
	assert.False(t, b.Pressed())
	p.Lock()
	p.L = pgpio.Low
	p.Unlock()
	assert.True(t, b.Pressed())
}

type failingPin struct {
	gpiotest.Pin
}

var errFail = errors.New("fail")

func (p *failingPin) Out(l pgpio.Level) error {
	return errFail
}

func TestErr(t *testing.T) {
	p := &failingPin{gpiotest.Pin{N: "GPIO24", Num: 24}}
	l := periphio.New(p)
	l.Write(gpio.High)
	l.Write(gpio.Low)
	err := l.Err()
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, errFail))
	assert.Equal(t, "GPIO24: fail", err.Error())
}

func TestByName(t *testing.T) {
	p := &gpiotest.Pin{N: "SEGCLOCK_TEST", Num: 99}
	require.Nil(t, gpioreg.Register(p))
	defer gpioreg.Unregister(p.N)

	l, err := periphio.ByName("SEGCLOCK_TEST")
	require.Nil(t, err)
	assert.Equal(t, "SEGCLOCK_TEST", l.Name())

	_, err = periphio.ByName("SEGCLOCK_MISSING")
	assert.True(t, errors.Is(err, periphio.ErrNoPin))
}

func TestShiftRegister(t *testing.T) {
	latch := &gpiotest.Pin{N: "latch"}
	clk := &gpiotest.Pin{N: "clock"}
	data := &gpiotest.Pin{N: "data"}
	r := shiftreg.New(periphio.New(latch), periphio.New(clk), periphio.New(data))
	r.Send(0xff, 0x01)
	// ends latched, with the clock low and the last data bit on the data line
	assert.Equal(t, pgpio.High, latch.L)
	assert.Equal(t, pgpio.Low, clk.L)
	assert.Equal(t, pgpio.High, data.L)
}
