// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package compress

import (
	"encoding/binary"

	"github.com/dsnet/logream/internal/envelope"
)

// appendMark appends a mark byte for the given region base and match
// length, inlining length when it fits in the low 6 bits and spilling to a
// trailing varint otherwise (the 0 value of the low bits is the sentinel
// meaning "read a varint next").
func appendMark(dst []byte, base byte, length int) []byte {
	if length <= inlineMax {
		return append(dst, base+byte(length))
	}
	dst = append(dst, base)
	return envelope.PutVarint(dst, uint32(length))
}

// appendPos appends the low n bytes of pos, little-endian.
func appendPos(dst []byte, pos int64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(pos>>(8*uint(i))))
	}
	return dst
}

// takePos reads an n-byte little-endian position from the front of p.
func takePos(p []byte, n int) (pos int64, rest []byte, ok bool) {
	if len(p) < n {
		return 0, nil, false
	}
	for i := 0; i < n; i++ {
		pos |= int64(p[i]) << (8 * uint(i))
	}
	return pos, p[n:], true
}

// takeLength resolves an inline mark length, reading a trailing varint from
// p when inline is the 0 sentinel.
func takeLength(inline int, p []byte) (length int, rest []byte, ok bool) {
	if inline != 0 {
		return inline, p, true
	}
	v, n := binary.Uvarint(p)
	if n <= 0 {
		return 0, nil, false
	}
	return int(v), p[n:], true
}

// profit reports the number of bytes a back-reference of the given length
// would save versus a literal, after accounting for the mark byte, the
// posBytes-byte position, and a trailing varint if length overflows the
// inline range. A literal is preferred whenever every candidate's profit is
// non-positive.
func profit(length, posBytes int) int {
	overhead := posBytes + 1
	if length > inlineMax {
		overhead += envelope.VarintLen(uint32(length))
	}
	return length - overhead
}

// selectBest picks the most profitable of the three candidate
// back-references, favoring war zone over battlefield over frontline on a
// tie (the order they're compared here).
func selectBest(wzProfit, bfProfit, flProfit int) (best, sol int) {
	best, sol = wzProfit, 0
	if bfProfit > best {
		best, sol = bfProfit, 1
	}
	if flProfit > best {
		best, sol = flProfit, 2
	}
	return best, sol
}
