package pic

import (
	"github.com/ezrec/wbpic/internal"
)

const (
	LINES          = 8                   // Number of interrupt lines.
	PRIORITY_BITS  = 4                   // Width of one priority field.
	PRIORITY_MASK  = uint8(0xf)          // Mask of one priority field.
	PRIORITY_NONE  = uint8(15)           // Never wins arbitration.
	PRIORITY_RESET = uint32(0x7654_3210) // Line n has priority n.
)

// State is the complete register file of the controller.
type State struct {
	Pending      uint8  // Latched, unacknowledged lines.
	Enable       uint8  // Lines allowed to arbitrate and raise IRQ.
	Priority     uint32 // Eight packed 4-bit priorities, line 0 in bits 3:0.
	GlobalEnable bool   // Master enable for arbitration and IRQ.
	HighestIrqId uint8  // Arbitration winner registered last tick.

	Ack      bool   // Bus acknowledge output.
	ReadData uint32 // Bus read data output.
}

// ResetState returns the register file after a reset.
func ResetState() State {
	return State{
		Priority:     PRIORITY_RESET,
		GlobalEnable: true,
	}
}

// LinePriority returns the priority field of a line.
func (st State) LinePriority(line int) uint8 {
	return uint8(st.Priority>>(PRIORITY_BITS*line)) & PRIORITY_MASK
}

// Irq is the aggregate interrupt output. It does not depend on the priority
// table, so a pending and enabled line with PRIORITY_NONE still raises it.
func (st State) Irq() bool {
	return st.GlobalEnable && (st.Pending&st.Enable) != 0
}

// Read returns the value of the register decoded from addr. Write-only and
// undecoded offsets read as zero.
func (st State) Read(addr uint32) (value uint32) {
	switch OffsetOf(addr) {
	case REG_PENDING:
		value = uint32(st.Pending)
	case REG_ENABLE:
		value = uint32(st.Enable)
	case REG_PRIORITY:
		value = st.Priority
	case REG_GLOBAL:
		if st.GlobalEnable {
			value = 1
		}
	case REG_HIGHEST:
		value = uint32(st.HighestIrqId)
	}

	return
}

// Encode is the priority encoder. Candidates are the pending and enabled
// lines, scanned from line 0 upwards; a candidate wins only if its priority is
// strictly less than the best seen so far, starting from PRIORITY_NONE. Ties
// therefore go to the lowest line, and a PRIORITY_NONE line never wins. With
// no winner, or with GlobalEnable clear, the result is line 0.
func Encode(st State) (id uint8) {
	if !st.GlobalEnable {
		return
	}

	best := PRIORITY_NONE
	for line := range internal.SetBits(uint32(st.Pending & st.Enable)) {
		prio := st.LinePriority(line)
		if prio < best {
			best = prio
			id = uint8(line)
		}
	}

	return
}
