// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// MaxRecordSize is the largest record size that fits within one battlefield
// once envelope overhead is accounted for (two varints plus a CRC).
const MaxRecordSize = 65536 - 5*2 - 4

// RandomRecords returns n records of random size in [minSize, maxSize),
// mixing highly repetitive and fully random payloads so callers exercise
// both the plain and back-reference encoding paths.
func RandomRecords(r *Rand, n, minSize, maxSize int) [][]byte {
	recs := make([][]byte, n)
	for i := range recs {
		size := minSize
		if maxSize > minSize {
			size += r.Intn(maxSize - minSize)
		}
		if r.Intn(2) == 0 {
			recs[i] = r.Bytes(size)
		} else {
			pattern := r.Bytes(1 + r.Intn(32))
			recs[i] = r.RepeatBytes(pattern, size)
		}
	}
	return recs
}
