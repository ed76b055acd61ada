// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pic

import (
	"bytes"
	"log"
	"maps"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/wbpic/wishbone"
)

func TestPic(t *testing.T) {
	assert := assert.New(t)

	pc := NewPic()

	assert.False(pc.Verbose)
	assert.Equal(ResetState(), pc.State)
	assert.Equal(0, pc.Ticks)
	assert.False(pc.Irq())
}

func TestPic_Tick(t *testing.T) {
	assert := assert.New(t)

	pc := NewPic()

	rsp := pc.Tick(write(REG_ENABLE, 0xff))
	assert.Equal(wishbone.Response{Data: 0, Ack: true}, rsp)

	rsp = pc.Tick(wishbone.Request{})
	assert.Equal(wishbone.Response{}, rsp)

	// Input wires are levels, sampled every tick.
	pc.Lines = 0x08
	pc.Tick(wishbone.Request{})
	assert.True(pc.Irq())
	assert.Equal(0, pc.Highest())
	pc.Lines = 0
	pc.Tick(wishbone.Request{})
	assert.Equal(3, pc.Highest())

	rsp = pc.Tick(read(REG_HIGHEST))
	assert.Equal(wishbone.Response{Data: 3, Ack: true}, rsp)

	rsp = pc.Tick(write(REG_ACK, 0x08))
	assert.True(rsp.Ack)
	assert.False(pc.Irq())
	assert.Equal(6, pc.Ticks)

	pc.Lines = 0x80
	pc.Reset()
	assert.Equal(ResetState(), pc.State)
	assert.Equal(0, pc.Ticks)
	assert.Equal(uint8(0x80), pc.Lines)
}

func TestPic_Defines(t *testing.T) {
	assert := assert.New(t)

	pc := NewPic()
	defines := maps.Collect(pc.Defines())

	assert.Equal("0x00", defines["REG_PENDING"])
	assert.Equal("0x04", defines["REG_ENABLE"])
	assert.Equal("0x08", defines["REG_PRIORITY"])
	assert.Equal("0x0c", defines["REG_GLOBAL"])
	assert.Equal("0x10", defines["REG_ACK"])
	assert.Equal("0x14", defines["REG_HIGHEST"])
	assert.Equal("8", defines["PIC_LINES"])
	assert.Equal("15", defines["PRIORITY_NONE"])
}

func TestPic_String(t *testing.T) {
	assert := assert.New(t)

	pc := NewPic()
	pc.Lines = 0x09
	pc.Tick(write(REG_ENABLE, 0x01))

	text := pc.String()
	assert.Contains(text, " pending: 00001001\n")
	assert.Contains(text, "  enable: 00000001\n")
	assert.Contains(text, "priority: 7654_3210\n")
	assert.Contains(text, "  global: true\n")
	assert.Contains(text, " highest: 0\n")
	assert.Contains(text, "     irq: true\n")
}

func TestPic_Verbose(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	flags := log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	pc := NewPic()
	pc.Verbose = true
	pc.Reset()
	pc.Tick(write(REG_ENABLE, 0xff))
	pc.Lines = 0x04
	pc.Tick(write(REG_ACK, 0x01))
	pc.Tick(wishbone.Request{})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal([]string{
		"pic: reset",
		"pic: tick 0 write enable 0x000000ff",
		"pic: tick 1 write ack 0x00000001",
		"pic: tick 1 line 2 dropped by acknowledge",
		"pic: tick 2 irq true",
	}, lines)
}

func TestPic_VerboseHeldLevel(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	flags := log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	pc := NewPic()
	pc.Lines = 0x02
	pc.Tick(wishbone.Request{})

	// Acknowledging a line whose input is still held is not a lost arrival.
	pc.Verbose = true
	pc.Tick(write(REG_ACK, 0x02))
	assert.Equal(uint8(0x00), pc.Pending)
	assert.NotContains(buf.String(), "dropped")

	// It latches again on the next tick.
	pc.Tick(wishbone.Request{})
	assert.Equal(uint8(0x02), pc.Pending)
	assert.NotContains(buf.String(), "dropped")
}

func TestOffset_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("pending", REG_PENDING.String())
	assert.Equal("ack", REG_ACK.String())
	assert.Equal("highest", REG_HIGHEST.String())
	assert.Equal("Offset(24)", Offset(0x18).String())
	assert.Equal(REG_GLOBAL, OffsetOf(0x1000_000c))
}
