package pic

import (
	"github.com/ezrec/wbpic/wishbone"
)

// Inputs are the signals sampled on one tick.
type Inputs struct {
	Lines uint8            // Interrupt input levels, bit n is line n.
	Reset bool             // Synchronous reset.
	Bus   wishbone.Request // Bus cycle. Only Stb qualifies it; Cyc is ignored.
}

// Step computes the register file for the next tick from prev and in.
//
// PendingMask has two writers in the same tick, applied in order with the
// last one winning: the input latch, then an acknowledge write. The
// acknowledge is applied to prev.Pending, not to the latched value, so a line
// that first asserts on the same tick as an acknowledge write is dropped for
// that tick.
func Step(prev State, in Inputs) (next State) {
	if in.Reset {
		next = ResetState()
		return
	}

	req := in.Bus
	next = prev

	next.Pending = prev.Pending | in.Lines

	if req.Stb && req.We {
		switch OffsetOf(req.Addr) {
		case REG_ENABLE:
			next.Enable = uint8(req.Data)
		case REG_PRIORITY:
			next.Priority = req.Data
		case REG_GLOBAL:
			next.GlobalEnable = (req.Data & 1) != 0
		case REG_ACK:
			next.Pending = prev.Pending &^ uint8(req.Data)
		}
	}

	next.HighestIrqId = Encode(prev)

	next.Ack = req.Stb
	next.ReadData = 0
	if req.Stb {
		next.ReadData = prev.Read(req.Addr)
	}

	return
}
