package emulator

import (
	"errors"

	"github.com/ezrec/wbpic/translate"
)

var f = translate.From

var (
	ErrBusTimeout = errors.New(f("bus timeout"))
)

// ErrBus indicates the address of a failed bus cycle.
type ErrBus struct {
	Addr uint32
	Err  error
}

func (err *ErrBus) Error() string {
	return f("bus 0x%08x %v", err.Addr, err.Err)
}

func (err *ErrBus) Unwrap() error {
	return err.Err
}
