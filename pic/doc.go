// Package pic implements the eight-line priority interrupt controller.
//
// The controller latches its interrupt inputs into a sticky pending mask,
// gates them with a per-line enable mask and a global enable, and selects the
// most urgent line with a four-bit per-line priority table, where the lower
// value wins. Software reaches the registers through a Wishbone slave port.
//
// The transition function Step is pure: all next-state values are computed
// from one snapshot of the previous state and the current inputs. Pic wraps
// it with the input wire levels and a tick counter so it can sit on a bus.
package pic
