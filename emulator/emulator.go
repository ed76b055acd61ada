// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/wbpic/internal"
	"github.com/ezrec/wbpic/pic"
	"github.com/ezrec/wbpic/wishbone"
)

const (
	PIC_BASE    = wishbone.SLAVE_BASE_START // Controller window.
	PIC_IRQ     = 0                         // user_irq bit driven by the controller.
	RAM_WORDS   = 1024                      // Scratch memory size in words.
	BUS_TIMEOUT = 16                        // Ticks to wait for a bus acknowledge.
)

var _emulator_defines = map[string]string{
	"BUS_TIMEOUT": fmt.Sprintf("%v", BUS_TIMEOUT),
	"RAM_WORDS":   fmt.Sprintf("%v", RAM_WORDS),
}

// Emulator state. Bus splitter + controller + scratch memory.
type Emulator struct {
	Verbose bool          // If set, enables verbose logging.
	Bus     *wishbone.Bus // Bus splitter.
	Pic     *pic.Pic      // Interrupt controller.
	Ram     *wishbone.Memory

	Trace io.Writer // If set, receives one line per tick.

	ticks int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Bus: &wishbone.Bus{},
		Pic: pic.NewPic(),
		Ram: wishbone.NewMemory(RAM_WORDS),
	}

	err := emu.Bus.Attach("pic0", emu.Pic, wishbone.WithBase(PIC_BASE), wishbone.WithIrq(PIC_IRQ))
	if err != nil {
		panic(err)
	}

	err = emu.Bus.Attach("ram0", emu.Ram)
	if err != nil {
		panic(err)
	}

	return
}

// Defines returns an iterator over all of the defines. Controller
// registers are given as absolute addresses.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	regs := map[string]string{}
	for _, off := range pic.Offsets {
		key := strings.ToUpper(fmt.Sprintf("PIC_%v", off))
		regs[key] = fmt.Sprintf("0x%08x", PIC_BASE+uint32(off))
	}

	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		maps.All(regs),
		emu.Pic.Defines(),
		emu.Bus.Defines(),
	)
}

// Reset the system.
func (emu *Emulator) Reset() {
	emu.Bus.Verbose = emu.Verbose
	emu.Pic.Verbose = emu.Verbose

	emu.Bus.Reset()
	emu.ticks = 0
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// SetLines drives the controller interrupt inputs. The levels persist
// until changed.
func (emu *Emulator) SetLines(lines uint8) {
	emu.Pic.Lines = lines
}

// Irq returns the controller aggregate interrupt output.
func (emu *Emulator) Irq() bool {
	return emu.Pic.Irq()
}

// UserIrq returns the user_irq[2:0] vector.
func (emu *Emulator) UserIrq() uint8 {
	return emu.Bus.UserIrq()
}

// Tick performs a single idle bus cycle.
func (emu *Emulator) Tick() {
	emu.cycle(wishbone.Request{})
}

// Write performs a single bus write cycle.
func (emu *Emulator) Write(addr uint32, data uint32) (err error) {
	_, err = emu.transfer(wishbone.Request{Addr: addr, Data: data, We: true, Stb: true, Cyc: true})
	return
}

// Read performs a single bus read cycle.
func (emu *Emulator) Read(addr uint32) (data uint32, err error) {
	data, err = emu.transfer(wishbone.Request{Addr: addr, Stb: true, Cyc: true})
	return
}

// transfer holds the request on the bus until it is acknowledged, at most
// BUS_TIMEOUT ticks.
func (emu *Emulator) transfer(req wishbone.Request) (data uint32, err error) {
	defer func() {
		if err != nil {
			err = &ErrBus{Addr: req.Addr, Err: err}
		}
	}()

	for range BUS_TIMEOUT {
		rsp := emu.cycle(req)
		if rsp.Ack {
			data = rsp.Data
			return
		}
	}

	err = ErrBusTimeout
	return
}

// cycle clocks the bus once.
func (emu *Emulator) cycle(req wishbone.Request) (rsp wishbone.Response) {
	emu.Bus.Verbose = emu.Verbose
	emu.Pic.Verbose = emu.Verbose

	rsp = emu.Bus.Tick(req)
	emu.ticks++

	if emu.Trace != nil {
		st := emu.Pic.State
		fmt.Fprintf(emu.Trace, "%6d pending=%08b enable=%08b global=%v highest=%d irq=%v user_irq=%03b",
			emu.ticks, st.Pending, st.Enable, b2i(st.GlobalEnable), st.HighestIrqId, b2i(st.Irq()), emu.UserIrq())
		if req.Stb {
			op := "rd"
			if req.We {
				op = "wr"
			}
			fmt.Fprintf(emu.Trace, " %v 0x%08x=0x%08x ack=%v", op, req.Addr, pick(req.We, req.Data, rsp.Data), b2i(rsp.Ack))
		}
		fmt.Fprintln(emu.Trace)
	}

	return
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func pick(we bool, wdata, rdata uint32) uint32 {
	if we {
		return wdata
	}
	return rdata
}
