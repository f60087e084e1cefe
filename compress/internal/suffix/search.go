// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffix

import "bytes"

// Index is the suffix-array-backed dictionary built once per region (the war
// zone, or a battlefield) and searched once per encode position thereafter.
type Index struct {
	data      []byte
	minRepeat int
	sa        []int32
	lcplr     []int32
	bloom     *bloom
}

// Build constructs the suffix array, LCP-LR array, and Bloom filter for a
// fully-populated region. It is called exactly once per region (the war
// zone after its first 16 MiB fills; a battlefield after its first 64 KiB
// fills): once built, a region's index never changes, and every later record
// in that region searches against it.
func Build(data []byte, minRepeat int) *Index {
	sa := ComputeSA(data)
	lcp := buildLCP(data, sa)
	return &Index{
		data:      data,
		minRepeat: minRepeat,
		sa:        sa,
		lcplr:     buildLCPLR(lcp),
		bloom:     newBloom(data, minRepeat),
	}
}

// FindLongestRepeat returns the position and length of the longest prefix of
// pattern that occurs anywhere in the indexed region, or (0, 0) if no match
// of at least minRepeat bytes exists.
//
// This performs a single top-down LCP-LR-guided binary search: each step
// either skips a string comparison entirely (using the precomputed LCP of
// the current range's endpoints) or performs exactly one comparison to
// refine how many pattern bytes are already known to match.
func (idx *Index) FindLongestRepeat(pattern []byte) (pos, length int) {
	n := len(idx.sa)
	m := len(pattern)
	if n == 0 || m < idx.minRepeat || !idx.bloom.mayContain(pattern[:idx.minRepeat]) {
		return 0, 0
	}

	src := idx.data
	sa := idx.sa
	lcplr := idx.lcplr

	grow := false
	compareTo := func(num, start int) int {
		i := int(sa[num]) + start
		for i < n && start < m && src[i] == pattern[start] {
			i++
			start++
		}
		var a, b byte
		if i < n {
			a = src[i]
		}
		if start < m {
			b = pattern[start]
		}
		grow = a < b
		return start
	}

	i := 1
	l, r := 0, n-1
	commons, matches := 0, 0

	for {
		mid := (l + r) / 2
		switch {
		case commons > matches:
			if grow {
				l = mid
				i = i*2 + 1
			} else {
				r = mid
				i = i * 2
			}
		case commons < matches:
			if grow {
				r = mid
				i = i * 2
			} else {
				l = mid
				i = i*2 + 1
			}
		default:
			matches = compareTo(mid, matches)
			if grow {
				l = mid
				i = i*2 + 1
			} else {
				r = mid
				i = i * 2
			}
		}

		if r-l <= 2 {
			break
		}

		child := i * 2
		if !grow {
			child++
		}
		if child < len(lcplr) {
			commons = int(lcplr[child])
		} else {
			commons = 0
		}
	}

	for j := l; j <= r; j++ {
		from := int(sa[j])
		limit := m
		if n-from < limit {
			limit = n - from
		}
		cp := 0
		for cp < limit && src[from+cp] == pattern[cp] {
			cp++
		}
		if cp > length {
			pos, length = from, cp
		}
	}
	if length < idx.minRepeat {
		return 0, 0
	}
	return pos, length
}

// FindLongestRepeatWindow finds, within record at encode position before,
// the longest prefix of record[before:] that also occurs somewhere in the
// windowSize bytes preceding before. It returns the 1-byte wire offset
// (distance back from before to the match start, minus one, so that offset
// 0 means "the byte immediately before before") and the match length.
//
// Matches may be found starting anywhere before `before`, but the needle
// searched for is allowed to run past `before` into not-yet-encoded bytes of
// record: this is what lets the decoder reconstruct runs longer than the
// window by copying byte-at-a-time from an overlapping source range.
func FindLongestRepeatWindow(record []byte, before, windowSize int) (offset, length int) {
	begin := 0
	if before > windowSize {
		begin = before - windowSize
	}

	i := 0
	for before+i < len(record) {
		needle := record[before : before+i+1]
		rel := bytes.Index(record[begin:], needle)
		if rel < 0 {
			break
		}
		pos := begin + rel
		if pos >= before {
			break
		}
		begin = pos
		i++
	}
	return before - begin - 1, i
}
