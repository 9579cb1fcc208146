package rolegraph

import (
	"math"
	"math/bits"
)

// PairEncode computes a deterministic, bijective encoding of two node ids
// into a single uint64 edge id (spec §4.3.1). Ordered pairs are distinct:
// PairEncode(a, b) != PairEncode(b, a) unless a == b.
//
// We use Szudzik's "elegant pairing" rather than the literal Cantor
// formula spec.md writes out, because spec §4.3.1 explicitly allows "any
// documented bijection producing a unique u64", and Szudzik's function is
// the one that actually stays inside uint64 for the full 32-bit input
// range the invariant I8 exercises: for x, y < 2^32, Cantor's
// ((x+y)(x+y+1))/2 + y can exceed 2^64 in its worst case (x = y = 2^32-1
// gives a sum around 2^33, squared is around 2^66), while Szudzik's
// max(x,y)^2 + ... stays just inside 2^64 for the same inputs.
func PairEncode(x, y uint64) (uint64, error) {
	if x >= y {
		hi, lo := bits.Mul64(x, x)
		if hi != 0 {
			return 0, ErrPairOverflow
		}
		sum, carry := addCheck(lo, x)
		if carry {
			return 0, ErrPairOverflow
		}
		sum, carry = addCheck(sum, y)
		if carry {
			return 0, ErrPairOverflow
		}
		return sum, nil
	}
	hi, lo := bits.Mul64(y, y)
	if hi != 0 {
		return 0, ErrPairOverflow
	}
	sum, carry := addCheck(lo, x)
	if carry {
		return 0, ErrPairOverflow
	}
	return sum, nil
}

// PairDecode inverts PairEncode (spec's pair_decode), recovering (x, y)
// unambiguously for any id produced by PairEncode (I8).
func PairDecode(id uint64) (x, y uint64) {
	sqz := uint64(math.Sqrt(float64(id)))
	for sqz > 0 && sqz*sqz > id {
		sqz--
	}
	for (sqz+1)*(sqz+1) <= id {
		sqz++
	}

	if id-sqz*sqz < sqz {
		return id - sqz*sqz, sqz
	}
	return sqz, id - sqz*sqz - sqz
}

func addCheck(a, b uint64) (sum uint64, overflow bool) {
	sum = a + b
	return sum, sum < a
}
