// Package script runs Starlark testbenches against an emulator.
//
// A testbench drives the interrupt inputs, clocks the system, and issues bus
// cycles through builtins:
//
//	tick(n=1)             clock n idle cycles
//	lines(mask)           set the interrupt input levels
//	pulse(mask)           assert mask for one tick, then restore the levels
//	read(addr)            bus read, returns the data
//	write(addr, data)     bus write
//	irq()                 aggregate interrupt output
//	user_irq()            user_irq[2:0]
//	reset()               reset the system
//	ticks()               ticks since reset
//	dump()                print the controller registers
//	check(actual, expected, msg="")
//
// Every emulator define is predeclared as an integer constant, so register
// addresses are available as PIC_ENABLE, PIC_ACK, and so on.
package script

import (
	"fmt"
	"io"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/wbpic/emulator"
)

// Testbench binds an emulator to the script builtins.
type Testbench struct {
	Emulator *emulator.Emulator
	Output   io.Writer // Destination of print() and dump().
}

// Run executes the testbench script src, named filename, against emu.
// src may be anything starlark.ExecFileOptions accepts; nil reads filename.
func Run(emu *emulator.Emulator, filename string, src any, out io.Writer) (err error) {
	tb := &Testbench{Emulator: emu, Output: out}
	return tb.Run(filename, src)
}

// Run executes the testbench script.
func (tb *Testbench) Run(filename string, src any) (err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Filename: filename, Err: err}
		}
	}()

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(tb.Output, msg)
		},
	}

	opts := &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	_, err = starlark.ExecFileOptions(opts, thread, filename, src, tb.Predeclared())
	return
}

// Predeclared returns the builtins and integer defines.
func (tb *Testbench) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range tb.Emulator.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Only integer defines are exposed.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	builtins := map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"tick":     tb.tick,
		"lines":    tb.lines,
		"pulse":    tb.pulse,
		"read":     tb.read,
		"write":    tb.write,
		"irq":      tb.irq,
		"user_irq": tb.userIrq,
		"reset":    tb.reset,
		"ticks":    tb.ticks,
		"dump":     tb.dump,
		"check":    tb.check,
	}

	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return
}

func (tb *Testbench) tick(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	for range n {
		tb.Emulator.Tick()
	}

	return starlark.None, nil
}

func (tb *Testbench) lines(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var mask int64
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "mask", &mask); err != nil {
		return nil, err
	}

	tb.Emulator.SetLines(uint8(mask))

	return starlark.None, nil
}

func (tb *Testbench) pulse(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var mask int64
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "mask", &mask); err != nil {
		return nil, err
	}

	levels := tb.Emulator.Pic.Lines
	tb.Emulator.SetLines(levels | uint8(mask))
	tb.Emulator.Tick()
	tb.Emulator.SetLines(levels)

	return starlark.None, nil
}

func (tb *Testbench) read(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int64
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr); err != nil {
		return nil, err
	}

	data, err := tb.Emulator.Read(uint32(addr))
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint64(uint64(data)), nil
}

func (tb *Testbench) write(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, data int64
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "data", &data); err != nil {
		return nil, err
	}

	err := tb.Emulator.Write(uint32(addr), uint32(data))
	if err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (tb *Testbench) irq(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.Bool(tb.Emulator.Irq()), nil
}

func (tb *Testbench) userIrq(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(tb.Emulator.UserIrq())), nil
}

func (tb *Testbench) reset(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	tb.Emulator.Reset()

	return starlark.None, nil
}

func (tb *Testbench) ticks(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(tb.Emulator.Ticks()), nil
}

func (tb *Testbench) dump(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	fmt.Fprint(tb.Output, tb.Emulator.Pic.String())

	return starlark.None, nil
}

func (tb *Testbench) check(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var actual, expected starlark.Value
	var msg string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "actual", &actual, "expected", &expected, "msg?", &msg); err != nil {
		return nil, err
	}

	ok, err := starlark.Equal(actual, expected)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &ErrCheck{
			Message:  msg,
			Actual:   actual.String(),
			Expected: expected.String(),
		}
	}

	return starlark.None, nil
}
