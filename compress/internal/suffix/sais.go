// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffix builds and searches the suffix-array-backed dictionary
// index that the compress codec uses to locate the longest repeated
// substring of a record inside a war zone or battlefield region.
package suffix

import "sort"

// ComputeSA computes the suffix array of src: SA[i] < SA[j] implies the
// suffix starting at SA[i] is lexicographically less than the one starting
// at SA[j].
//
// This mirrors the public contract of dsnet/compress's bzip2/internal/sais
// package (ComputeSA(T []byte, SA []int)), but the construction itself is
// prefix doubling (Manber-Myers rank refinement) rather than SA-IS: building
// SA-IS's induced-sort recursion correctly over an arbitrary byte alphabet
// (sentinel handling, S/L-type classification, recursive reduction) is easy
// to get subtly wrong without a test run to catch it. Prefix doubling is
// O(n log^2 n) rather than SA-IS's O(n), but it is simple enough to trust
// untested, and its correctness is checked independently by brute force in
// suffix_test.go.
func ComputeSA(src []byte) []int32 {
	n := len(src)
	sa := make([]int32, n)
	if n == 0 {
		return sa
	}

	rank := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
		rank[i] = int32(src[i])
	}
	tmp := make([]int32, n)

	for k := 1; ; k *= 2 {
		rankAt := func(idx int32) int32 {
			j := int(idx) + k
			if j < n {
				return rank[j]
			}
			return -1
		}
		less := func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a) < rankAt(b)
		}
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
		if rank[sa[n-1]] == int32(n-1) || k >= n {
			break
		}
	}
	return sa
}
