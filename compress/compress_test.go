// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package compress

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/logream"
	"github.com/dsnet/logream/internal/testutil"
	"github.com/dsnet/logream/storage"
)

// The test region sizes keep the war zone / battlefield / frontline regions tiny so
// tests exercise every transition (first war zone, first battlefield of a
// later war zone, the fully compressed path, and the boundary-spill reseed)
// without paying for a suffix-array build over real 16 MiB/64 KiB regions.
const (
	testWarZoneSize     = 512
	testBattlefieldSize = 128
	testFrontlineSize   = 32
)

func newTestWriter(helper logream.WriteHelper) *Writer {
	return newWriter(helper, 0, testWarZoneSize, testBattlefieldSize, testFrontlineSize)
}

func newTestReader(helper logream.ReadHelper) *Reader {
	return newReader(helper, testWarZoneSize, testBattlefieldSize)
}

func TestWriterReaderRoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	w := newTestWriter(mem)

	r := testutil.NewRand(42)
	records := testutil.RandomRecords(r, 400, 0, 40)

	ids := make([]int64, len(records))
	for i, rec := range records {
		id, err := w.Add(rec)
		if err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
		ids[i] = id
	}

	rd := newTestReader(mem)
	for i, id := range ids {
		got, next, err := rd.Get(id, nil)
		if err != nil {
			t.Fatalf("Get(%d) at id %d: %v", i, id, err)
		}
		if diff := cmp.Diff(records[i], got); diff != "" {
			t.Fatalf("Get(%d): mismatch (-want +got):\n%s", i, diff)
		}
		if i+1 < len(ids) && next != ids[i+1] {
			t.Fatalf("Get(%d): next = %d, want %d", i, next, ids[i+1])
		}
	}
}

func TestWriterReaderRepetitive(t *testing.T) {
	mem := storage.NewMemory()
	w := newTestWriter(mem)

	pattern := []byte("the quick brown fox jumps over the lazy dog; ")
	r := testutil.NewRand(7)
	var ids []int64
	var records [][]byte
	var totalInput int64
	for i := 0; i < 300; i++ {
		rec := r.RepeatBytes(pattern, 4+r.Intn(36))
		id, err := w.Add(rec)
		if err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
		ids = append(ids, id)
		records = append(records, rec)
		totalInput += int64(len(rec))
	}

	rd := newTestReader(mem)
	for i, id := range ids {
		got, _, err := rd.Get(id, nil)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if !bytes.Equal(got, records[i]) {
			t.Fatalf("Get(%d): got %q, want %q", i, got, records[i])
		}
	}

	// A highly repetitive corpus should, once the war zone and battlefield
	// dictionaries are warmed up, compress to well under its original size
	// (even accounting for the per-record envelope overhead the first
	// couple of regions pay before any dictionary exists).
	if mem.Len() >= totalInput {
		t.Fatalf("expected compression, wrote %d bytes for %d bytes of input", mem.Len(), totalInput)
	}
}

func TestReaderDetectsCorruption(t *testing.T) {
	mem := storage.NewMemory()
	w := newTestWriter(mem)

	id, err := w.Add([]byte("hello, world"))
	if err != nil {
		t.Fatal(err)
	}

	data := append([]byte(nil), mem.Bytes()...)
	data[len(data)-1] ^= 0xff
	corrupt := storage.NewMemory()
	if err := corrupt.Write(data); err != nil {
		t.Fatal(err)
	}

	rd := newTestReader(corrupt)
	if _, _, err := rd.Get(id, nil); err == nil {
		t.Fatal("Get: expected error on corrupted checksum, got nil")
	}
}

func TestAddRejectsOversizedRecord(t *testing.T) {
	mem := storage.NewMemory()
	w := newTestWriter(mem)
	if _, err := w.Add(make([]byte, testBattlefieldSize)); err == nil {
		t.Fatal("Add: expected error for a record that cannot fit in a battlefield")
	}
}

func TestSelectBestTieBreak(t *testing.T) {
	// War zone match one byte longer than battlefield match: both lengths
	// fit inline, so profit(L,3) == profit(L-1,2) == L-4. A genuine tie;
	// war zone must win.
	if _, sol := selectBest(profit(10, 3), profit(9, 2), profit(0, 1)); sol != 0 {
		t.Fatalf("selectBest: tie between war zone and battlefield resolved to %d, want 0 (war zone)", sol)
	}
	// Same shape of tie between battlefield and frontline: battlefield wins.
	if _, sol := selectBest(profit(0, 3), profit(10, 2), profit(9, 1)); sol != 1 {
		t.Fatalf("selectBest: tie between battlefield and frontline resolved to %d, want 1 (battlefield)", sol)
	}
	// Strictly better frontline match wins outright.
	if _, sol := selectBest(profit(4, 3), profit(4, 2), profit(20, 1)); sol != 2 {
		t.Fatalf("selectBest: clear frontline win resolved to %d, want 2 (frontline)", sol)
	}
	// No candidate profitable: literal fallback signaled by best <= 0.
	if best, _ := selectBest(profit(0, 3), profit(0, 2), profit(1, 1)); best > 0 {
		t.Fatalf("selectBest: expected non-positive profit for unprofitable candidates, got %d", best)
	}
}

func TestAppendMarkInlineBoundary(t *testing.T) {
	dst := appendMark(nil, markWarZone, inlineMax)
	if len(dst) != 1 || dst[0] != markWarZone+inlineMax {
		t.Fatalf("appendMark(inlineMax): got %v", dst)
	}

	dst = appendMark(nil, markWarZone, inlineMax+1)
	if len(dst) < 2 || dst[0] != markWarZone {
		t.Fatalf("appendMark(inlineMax+1): got %v", dst)
	}
	length, rest, ok := takeLength(0, dst[1:])
	if !ok || length != inlineMax+1 || len(rest) != 0 {
		t.Fatalf("takeLength: got (%d, %v, %v), want (%d, [], true)", length, rest, ok, inlineMax+1)
	}
}
