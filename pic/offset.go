package pic

// Offset is a register byte offset within the controller window.
type Offset uint32

//go:generate go tool stringer -linecomment -type=Offset
const (
	REG_PENDING  = Offset(0x00) // pending
	REG_ENABLE   = Offset(0x04) // enable
	REG_PRIORITY = Offset(0x08) // priority
	REG_GLOBAL   = Offset(0x0C) // global
	REG_ACK      = Offset(0x10) // ack
	REG_HIGHEST  = Offset(0x14) // highest
)

// ADDR_DECODE_MASK selects the address bits decoded by the controller.
const ADDR_DECODE_MASK = uint32(0xff)

// OffsetOf decodes a bus address to a register offset.
func OffsetOf(addr uint32) Offset {
	return Offset(addr & ADDR_DECODE_MASK)
}

// Offsets lists the decoded registers in address order.
var Offsets = []Offset{
	REG_PENDING,
	REG_ENABLE,
	REG_PRIORITY,
	REG_GLOBAL,
	REG_ACK,
	REG_HIGHEST,
}
