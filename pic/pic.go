// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pic

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/wbpic/internal"
	"github.com/ezrec/wbpic/wishbone"
)

var _pic_defines = map[string]string{
	"PIC_LINES":     fmt.Sprintf("%v", LINES),
	"PRIORITY_NONE": fmt.Sprintf("%v", PRIORITY_NONE),
}

func init() {
	for _, off := range Offsets {
		_pic_defines["REG_"+strings.ToUpper(off.String())] = fmt.Sprintf("0x%02x", uint32(off))
	}
}

// Pic is a controller instance on a bus.
type Pic struct {
	Verbose bool // If set, enables verbose logging.
	State        // Register file.

	Lines uint8 // Interrupt input wire levels, sampled every tick.
	Ticks int   // Ticks since reset.
}

var _ wishbone.Slave = (*Pic)(nil)

// NewPic creates a controller in its reset state.
func NewPic() (pc *Pic) {
	pc = &Pic{}
	pc.Reset()

	return
}

// Defines for the controller registers.
func (pc *Pic) Defines() iter.Seq2[string, string] {
	return maps.All(_pic_defines)
}

// Reset the register file. The input wire levels are left alone.
func (pc *Pic) Reset() {
	if pc.Verbose {
		log.Printf("pic: reset")
	}

	pc.State = ResetState()
	pc.Ticks = 0
}

// Tick advances the controller by one clock with the current input wires and
// the bus request req, and returns the bus response.
func (pc *Pic) Tick(req wishbone.Request) (rsp wishbone.Response) {
	in := Inputs{Lines: pc.Lines, Bus: req}
	next := Step(pc.State, in)

	if pc.Verbose {
		pc.logTick(in, next)
	}

	pc.State = next
	pc.Ticks++

	rsp = wishbone.Response{Data: next.ReadData, Ack: next.Ack}
	return
}

// Highest returns the registered arbitration winner.
func (pc *Pic) Highest() int {
	return int(pc.HighestIrqId)
}

func (pc *Pic) logTick(in Inputs, next State) {
	req := in.Bus
	if req.Stb {
		off := OffsetOf(req.Addr)
		if req.We {
			log.Printf("pic: tick %d write %v 0x%08x", pc.Ticks, off, req.Data)
		} else {
			log.Printf("pic: tick %d read %v 0x%08x", pc.Ticks, off, next.ReadData)
		}
	}

	// Lines first asserted on this tick but not latched.
	for line := range internal.SetBits(uint32(in.Lines &^ pc.State.Pending &^ next.Pending)) {
		log.Printf("pic: tick %d line %d dropped by acknowledge", pc.Ticks, line)
	}

	if next.Irq() != pc.State.Irq() {
		log.Printf("pic: tick %d irq %v", pc.Ticks, next.Irq())
	}
}

// String returns the register file as text.
func (pc *Pic) String() (text string) {
	regs := []string{
		"pending", "enable", "priority", "global", "highest", "irq",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pending":
			strval = fmt.Sprintf("%08b", pc.Pending)
		case "enable":
			strval = fmt.Sprintf("%08b", pc.Enable)
		case "priority":
			val := pc.Priority
			strval = fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
		case "global":
			strval = fmt.Sprintf("%v", pc.GlobalEnable)
		case "highest":
			strval = fmt.Sprintf("%d", pc.HighestIrqId)
		case "irq":
			strval = fmt.Sprintf("%v", pc.Irq())
		}
		text += fmt.Sprintf("% 8s: %v\n", reg, strval)
	}

	return
}
