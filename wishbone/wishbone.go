// Package wishbone models the classic Wishbone bus used to reach the
// peripherals of the user project area: the request/response pair seen by
// each slave, the address-decoded splitter that selects one slave per
// window, and the aggregation of slave interrupts onto user_irq[2:0].
package wishbone

// Request is the master side of one bus cycle.
type Request struct {
	Addr uint32 // Full system address. Slaves decode their own low bits.
	Data uint32 // Write data.
	We   bool   // Write enable.
	Stb  bool   // Strobe.
	Cyc  bool   // Cycle in progress.
}

// Response is the slave side of one bus cycle.
type Response struct {
	Data uint32 // Read data.
	Ack  bool   // Acknowledge.
}

// Slave is a clocked peripheral on the bus.
type Slave interface {
	// Reset the slave to its power-on state.
	Reset()
	// Tick advances the slave by one clock, sampling req, and returns
	// the response visible until the next tick.
	Tick(req Request) Response
	// Irq reports the level of the slave interrupt output.
	Irq() bool
}
