// Copyright © 2017 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package gpio

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Open memory maps the GPIO register block from /dev/gpiomem and
// identifies the chip behind it.
func Open() error {
	memlock.Lock()
	defer memlock.Unlock()
	if len(mem) != 0 {
		return ErrAlreadyOpen
	}
	file, err := os.OpenFile("/dev/gpiomem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return fmt.Errorf("open gpiomem: %w", err)
	}
	defer file.Close()

	mem8, err = unix.Mmap(
		int(file.Fd()),
		0,
		memLength,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap gpiomem: %w", err)
	}
	mem = unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4)
	chipset = detectChip()
	return nil
}

// Close unmaps GPIO memory.
//
// Pins created before the Close must not be used afterwards.
func Close() error {
	memlock.Lock()
	defer memlock.Unlock()
	if len(mem) == 0 {
		return ErrNotOpen
	}
	mem = nil
	err := unix.Munmap(mem8)
	mem8 = nil
	return err
}

var (
	// ErrAlreadyOpen indicates the mem is already open.
	ErrAlreadyOpen = errors.New("already open")

	// ErrNotOpen indicates the mem has not been opened.
	ErrNotOpen = errors.New("not open")
)
