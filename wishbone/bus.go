package wishbone

import (
	"fmt"
	"iter"
	"log"
	"strings"
)

const (
	SLAVE_BASE_START = uint32(0x1000_0000) // Base of the first default window.
	SLAVE_ADDR_SIZE  = uint32(0x0001_0000) // Size of every slave window.
	USER_IRQS        = 3                   // Width of user_irq.
	IRQ_NONE         = -1                  // Slave interrupt is not connected.
)

type attachment struct {
	name  string
	base  uint32
	irq   int
	slave Slave
}

// selects is the chip-select decode for the attachment window.
func (at *attachment) selects(addr uint32) bool {
	return uint64(addr) >= uint64(at.base) &&
		uint64(addr) < uint64(at.base)+uint64(SLAVE_ADDR_SIZE)
}

// Option configures a slave as it is attached.
type Option func(at *attachment)

// WithBase places the slave window at base instead of the next default window.
func WithBase(base uint32) Option {
	return func(at *attachment) {
		at.base = base
	}
}

// WithIrq connects the slave interrupt to user_irq[irq].
func WithIrq(irq int) Option {
	return func(at *attachment) {
		at.irq = irq
	}
}

// Bus is the address-decoded splitter in front of a set of slaves.
type Bus struct {
	Verbose bool // If set, enables verbose logging.

	slave []*attachment
}

// Attach adds a slave to the bus. Without WithBase, the slave is placed at
// SLAVE_BASE_START plus its attach index times SLAVE_ADDR_SIZE.
func (bus *Bus) Attach(name string, slave Slave, opts ...Option) (err error) {
	at := &attachment{
		name:  name,
		base:  SLAVE_BASE_START + uint32(len(bus.slave))*SLAVE_ADDR_SIZE,
		irq:   IRQ_NONE,
		slave: slave,
	}

	for _, opt := range opts {
		opt(at)
	}

	defer func() {
		if err != nil {
			err = &ErrAttach{Name: name, Err: err}
		}
	}()

	if at.irq != IRQ_NONE && (at.irq < 0 || at.irq >= USER_IRQS) {
		err = ErrIrqRange
		return
	}

	for _, other := range bus.slave {
		if other.name == name {
			err = ErrSlaveDuplicate
			return
		}
		lo := max(uint64(at.base), uint64(other.base))
		hi := min(uint64(at.base), uint64(other.base)) + uint64(SLAVE_ADDR_SIZE)
		if lo < hi {
			err = ErrWindowOverlap
			return
		}
	}

	bus.slave = append(bus.slave, at)

	if bus.Verbose {
		log.Printf("bus: %v at 0x%08x irq %v", name, at.base, at.irq)
	}

	return
}

// Slaves iterates over the attached slaves by name, in attach order.
func (bus *Bus) Slaves() iter.Seq2[string, Slave] {
	return func(yield func(string, Slave) bool) {
		for _, at := range bus.slave {
			if !yield(at.name, at.slave) {
				return
			}
		}
	}
}

// Base returns the window base of the named slave.
func (bus *Bus) Base(name string) (base uint32, ok bool) {
	for _, at := range bus.slave {
		if at.name == name {
			return at.base, true
		}
	}
	return
}

// Defines returns the window base of every slave as NAME_BASE.
func (bus *Bus) Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, at := range bus.slave {
			key := strings.ToUpper(at.name) + "_BASE"
			if !yield(key, fmt.Sprintf("0x%08x", at.base)) {
				return
			}
		}
	}
}

// Reset all slaves.
func (bus *Bus) Reset() {
	if bus.Verbose {
		log.Printf("bus: reset")
	}

	for _, at := range bus.slave {
		at.slave.Reset()
	}
}

// Tick clocks every slave once. Only the slave whose window holds req.Addr
// sees Stb and Cyc; the response comes from the first such slave, or is
// idle if no window matches.
func (bus *Bus) Tick(req Request) (rsp Response) {
	selected := false

	for _, at := range bus.slave {
		cs := at.selects(req.Addr)

		sreq := req
		sreq.Stb = req.Stb && cs
		sreq.Cyc = req.Cyc && cs

		srsp := at.slave.Tick(sreq)
		if cs && !selected {
			rsp = srsp
			selected = true
		}
	}

	return
}

// Irq is true if any user_irq line is asserted.
func (bus *Bus) Irq() bool {
	return bus.UserIrq() != 0
}

// UserIrq returns the user_irq[2:0] vector.
func (bus *Bus) UserIrq() (irq uint8) {
	for _, at := range bus.slave {
		if at.irq != IRQ_NONE && at.slave.Irq() {
			irq |= 1 << at.irq
		}
	}

	return
}
