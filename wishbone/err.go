package wishbone

import (
	"errors"

	"github.com/ezrec/wbpic/translate"
)

var f = translate.From

var (
	ErrSlaveDuplicate = errors.New(f("slave duplicated"))
	ErrWindowOverlap  = errors.New(f("address window overlap"))
	ErrIrqRange       = errors.New(f("irq out of range (0-2)"))
)

// ErrAttach indicates which slave failed to attach.
type ErrAttach struct {
	Name string
	Err  error
}

func (err *ErrAttach) Error() string {
	return f("slave %v %v", err.Name, err.Err)
}

func (err *ErrAttach) Unwrap() error {
	return err.Err
}
