package script

import (
	"github.com/ezrec/wbpic/translate"
)

var f = translate.From

// ErrScript indicates the testbench that failed.
type ErrScript struct {
	Filename string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrCheck is a failed check() in a testbench.
type ErrCheck struct {
	Message  string
	Actual   string
	Expected string
}

func (err *ErrCheck) Error() string {
	if len(err.Message) == 0 {
		return f("check failed: got %v, expected %v", err.Actual, err.Expected)
	}
	return f("check failed: %v: got %v, expected %v", err.Message, err.Actual, err.Expected)
}
