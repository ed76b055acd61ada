package pic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetState(t *testing.T) {
	assert := assert.New(t)

	st := ResetState()
	assert.Equal(uint8(0), st.Pending)
	assert.Equal(uint8(0), st.Enable)
	assert.Equal(uint32(0x7654_3210), st.Priority)
	assert.True(st.GlobalEnable)
	assert.Equal(uint8(0), st.HighestIrqId)
	assert.False(st.Ack)
	assert.Equal(uint32(0), st.ReadData)

	for line := range LINES {
		assert.Equal(uint8(line), st.LinePriority(line))
	}
}

func TestState_Irq(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Pending uint8
		Enable  uint8
		Global  bool
		Irq     bool
	}){
		{Pending: 0x00, Enable: 0xff, Global: true, Irq: false},
		{Pending: 0x08, Enable: 0x00, Global: true, Irq: false},
		{Pending: 0x08, Enable: 0x08, Global: true, Irq: true},
		{Pending: 0x08, Enable: 0xf7, Global: true, Irq: false},
		{Pending: 0x81, Enable: 0x80, Global: true, Irq: true},
		{Pending: 0xff, Enable: 0xff, Global: false, Irq: false},
	}

	for _, testcase := range table {
		st := ResetState()
		st.Pending = testcase.Pending
		st.Enable = testcase.Enable
		st.GlobalEnable = testcase.Global
		assert.Equal(testcase.Irq, st.Irq(), fmt.Sprintf("%+v", testcase))
	}

	// Priority does not gate the aggregate output.
	st := ResetState()
	st.Priority = 0xffff_ffff
	st.Pending = 0x10
	st.Enable = 0x10
	assert.True(st.Irq())
}

func TestState_Read(t *testing.T) {
	assert := assert.New(t)

	st := State{
		Pending:      0xa5,
		Enable:       0x3c,
		Priority:     0x0123_4567,
		GlobalEnable: true,
		HighestIrqId: 6,
	}

	table := [](struct {
		Addr  uint32
		Value uint32
	}){
		{Addr: 0x00, Value: 0xa5},
		{Addr: 0x04, Value: 0x3c},
		{Addr: 0x08, Value: 0x0123_4567},
		{Addr: 0x0c, Value: 1},
		{Addr: 0x10, Value: 0},
		{Addr: 0x14, Value: 6},
		{Addr: 0x18, Value: 0},
		{Addr: 0x02, Value: 0},
		{Addr: 0xfc, Value: 0},
		{Addr: 0x1000_0004, Value: 0x3c},
		{Addr: 0x1000_0114, Value: 6},
	}

	for _, testcase := range table {
		assert.Equal(testcase.Value, st.Read(testcase.Addr), fmt.Sprintf("0x%x", testcase.Addr))
	}

	st.GlobalEnable = false
	assert.Equal(uint32(0), st.Read(uint32(REG_GLOBAL)))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Pending  uint8
		Enable   uint8
		Priority uint32
		Global   bool
		Id       uint8
	}){
		{Pending: 0x00, Enable: 0xff, Priority: PRIORITY_RESET, Global: true, Id: 0},
		{Pending: 0x08, Enable: 0xff, Priority: PRIORITY_RESET, Global: true, Id: 3},
		{Pending: 0x88, Enable: 0xff, Priority: PRIORITY_RESET, Global: true, Id: 3},
		{Pending: 0x88, Enable: 0xf7, Priority: PRIORITY_RESET, Global: true, Id: 7},
		{Pending: 0xff, Enable: 0xff, Priority: PRIORITY_RESET, Global: true, Id: 0},
		{Pending: 0xff, Enable: 0xfe, Priority: PRIORITY_RESET, Global: true, Id: 1},
		// Reversed priorities, line 7 most urgent.
		{Pending: 0xff, Enable: 0xff, Priority: 0x0123_4567, Global: true, Id: 7},
		{Pending: 0x7f, Enable: 0xff, Priority: 0x0123_4567, Global: true, Id: 6},
		// Ties go to the lowest line.
		{Pending: 0x24, Enable: 0xff, Priority: 0x5555_5555, Global: true, Id: 2},
		{Pending: 0xa0, Enable: 0xff, Priority: 0x2f2f_3f4f, Global: true, Id: 5},
		// A lower priority beats a lower line.
		{Pending: 0xa0, Enable: 0xff, Priority: 0x1f2f_3f4f, Global: true, Id: 7},
		// Priority 15 never wins.
		{Pending: 0x10, Enable: 0xff, Priority: 0x000f_0000, Global: true, Id: 0},
		{Pending: 0x30, Enable: 0xff, Priority: 0x00ef_0000, Global: true, Id: 5},
		{Pending: 0xff, Enable: 0xff, Priority: 0xffff_ffff, Global: true, Id: 0},
		{Pending: 0x81, Enable: 0xff, Priority: 0xefff_ffff, Global: true, Id: 7},
		// Global disable forces line 0.
		{Pending: 0x08, Enable: 0xff, Priority: PRIORITY_RESET, Global: false, Id: 0},
	}

	for _, testcase := range table {
		st := State{
			Pending:      testcase.Pending,
			Enable:       testcase.Enable,
			Priority:     testcase.Priority,
			GlobalEnable: testcase.Global,
		}
		assert.Equal(testcase.Id, Encode(st), fmt.Sprintf("%+v", testcase))
	}
}

// encodeModel is a line-by-line rendition of the arbitration rule.
func encodeModel(st State) uint8 {
	if !st.GlobalEnable {
		return 0
	}

	winner := uint8(0)
	minimum := uint8(15)
	for line := 0; line < 8; line++ {
		pending := (st.Pending>>line)&1 == 1
		enabled := (st.Enable>>line)&1 == 1
		prio := uint8((st.Priority >> (4 * line)) & 0xf)
		if pending && enabled && prio < minimum {
			minimum = prio
			winner = uint8(line)
		}
	}

	return winner
}

func FuzzEncode(f *testing.F) {
	f.Add(uint8(0x08), uint8(0xff), uint32(PRIORITY_RESET), true)
	f.Add(uint8(0xff), uint8(0xff), uint32(0xffff_ffff), true)
	f.Add(uint8(0xff), uint8(0x0f), uint32(0x0123_4567), false)
	f.Add(uint8(0xa5), uint8(0x5a), uint32(0x5555_5555), true)

	f.Fuzz(func(t *testing.T, pending uint8, enable uint8, priority uint32, global bool) {
		assert := assert.New(t)

		st := State{
			Pending:      pending,
			Enable:       enable,
			Priority:     priority,
			GlobalEnable: global,
		}

		id := Encode(st)
		assert.Equal(encodeModel(st), id)
		assert.Less(id, uint8(LINES))

		if id != 0 {
			// A non-zero winner is a candidate with a selectable priority.
			assert.NotZero(pending & enable & (1 << id))
			assert.Less(st.LinePriority(int(id)), PRIORITY_NONE)
		}
	})
}
