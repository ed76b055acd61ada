package wishbone

// Memory is a word-addressed scratch RAM slave.
type Memory struct {
	Data []uint32

	ack      bool
	readData uint32
}

var _ Slave = (*Memory)(nil)

// NewMemory creates a new memory of the given size in 32-bit words.
func NewMemory(words int) (mem *Memory) {
	mem = &Memory{
		Data: make([]uint32, words),
	}

	return
}

// Reset clears the memory contents and the bus outputs.
func (mem *Memory) Reset() {
	clear(mem.Data)
	mem.ack = false
	mem.readData = 0
}

// Tick services one bus cycle. Reads return the contents before any write
// in the same cycle; addresses past the end read zero and ignore writes.
func (mem *Memory) Tick(req Request) Response {
	index := int((req.Addr & (SLAVE_ADDR_SIZE - 1)) >> 2)

	mem.ack = req.Stb
	mem.readData = 0

	if req.Stb && index < len(mem.Data) {
		mem.readData = mem.Data[index]
		if req.We {
			mem.Data[index] = req.Data
		}
	}

	return Response{Data: mem.readData, Ack: mem.ack}
}

// Irq is never asserted by memory.
func (mem *Memory) Irq() bool {
	return false
}
