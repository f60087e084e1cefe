// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffix

import "math"

// buildLCP computes the LCP array of src from its suffix array sa using
// Kasai's algorithm: LCP[i] is the longest common prefix of the suffixes at
// SA[i] and SA[i+1] (the suffix at SA[len(sa)-1] has no successor and is
// assigned +infinity, matching the source algorithm's sentinel).
func buildLCP(src []byte, sa []int32) []int32 {
	n := len(sa)
	lcp := make([]int32, n)
	if n == 0 {
		return lcp
	}

	isa := make([]int32, n)
	for i, s := range sa {
		isa[s] = int32(i)
	}

	p := 0
	for i := 0; i < n; i++ {
		if int(isa[i]) == n-1 {
			p = 0
			lcp[n-1] = math.MaxInt32
			continue
		}
		j := int(sa[isa[i]+1])
		for i+p < n && j+p < n && src[i+p] == src[j+p] {
			p++
		}
		lcp[isa[i]] = int32(p)
		if p > 0 {
			p--
		}
	}
	return lcp
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// lcplrSize returns the number of heap-index slots buildLCPLR's recursion
// actually touches for a region of n suffixes.
//
// The source's own sizing (a plain array of length n) silently assumes the
// recursion's node indices never exceed the leaf count. That holds when n-1
// is a power of two or one less than a power of two (which covers a full
// 2^24-byte war zone and a full 2^16-byte battlefield), but for other
// region sizes the unequal L/R split walks indices past n; C++
// tolerates this as undefined behavior against a std::vector's backing
// store, but Go panics on an out-of-bounds slice access. This port sizes the
// array by walking the same recursion once, without writing anything, and
// allocates exactly enough slots, a deliberate deviation from the source's
// fixed n-sized array.
func lcplrSize(n int) int {
	if n <= 1 {
		return 2
	}
	maxIdx := 1
	var walk func(i, l, r int)
	walk = func(i, l, r int) {
		if i > maxIdx {
			maxIdx = i
		}
		if r-l <= 2 {
			return
		}
		m := (l + r) / 2
		walk(i*2, l, m)
		walk(i*2+1, m, r)
	}
	walk(1, 0, n-1)
	return maxIdx + 1
}

// buildLCPLR builds the heap-indexed LCP-LR array used by the binary search
// in search.go: node i (1-based) covers suffix-array range [l, r] and stores
// the longest common prefix of the suffixes at SA[l] and SA[r].
func buildLCPLR(lcp []int32) []int32 {
	n := len(lcp)
	lcplr := make([]int32, lcplrSize(n))
	if n < 2 {
		return lcplr
	}

	var build func(i, l, r int) (common, rangeMin int32)
	build = func(i, l, r int) (int32, int32) {
		var common, rangeMin int32
		switch r - l {
		case 1:
			common = lcp[l]
			rangeMin = min32(common, lcp[r])
		case 2:
			common = min32(lcp[l], lcp[l+1])
			rangeMin = min32(common, lcp[r])
		default:
			m := (l + r) / 2
			_, aMin := build(i*2, l, m)
			bCommon, bMin := build(i*2+1, m, r)
			common = min32(aMin, bCommon)
			rangeMin = min32(aMin, bMin)
		}
		lcplr[i] = common
		return common, rangeMin
	}
	build(1, 0, n-1)
	return lcplr
}
