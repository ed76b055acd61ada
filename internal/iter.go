package internal

import (
	"iter"
	"math/bits"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// SetBits yields the index of each set bit in mask, lowest first.
func SetBits(mask uint32) iter.Seq[int] {
	return func(yield func(int) bool) {
		for mask != 0 {
			index := bits.TrailingZeros32(mask)
			if !yield(index) {
				return
			}
			mask &= mask - 1
		}
	}
}
