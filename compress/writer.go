// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package compress

import (
	"encoding/binary"

	"github.com/dsnet/logream"
	"github.com/dsnet/logream/compress/internal/suffix"
	"github.com/dsnet/logream/internal/envelope"
)

// Writer appends records to a stream using the war zone / battlefield /
// frontline codec. A Writer is not safe for concurrent use; serialize Add
// calls from a single goroutine the way the group-commit Writer in the lite
// package does for its own codec.
type Writer struct {
	helper logream.WriteHelper
	cursor int64

	// Region sizes. Fields rather than the package constants so tests can
	// exercise the war-zone/battlefield transition logic without a
	// multi-megabyte fixture and the suffix-array build time that goes
	// with it; NewWriter always wires these to WarZoneSize, BattlefieldSize,
	// and FrontlineSize.
	warZoneSize, battlefieldSize, frontlineSize int64

	// warZone holds the first warZoneSize bytes ever written to the stream,
	// accumulated until full and then frozen as warZoneIndex.
	warZone []byte
	// battlefield holds the first battlefieldSize bytes of the war zone
	// currently being written, reseeded at the start of every war zone
	// after the first.
	battlefield []byte

	warZoneIndex     *suffix.Index
	battlefieldIndex *suffix.Index
}

// NewWriter returns a Writer that appends to helper starting at cursor,
// which must equal the number of bytes already written to the underlying
// stream (0 for a brand new stream).
func NewWriter(helper logream.WriteHelper, cursor int64) *Writer {
	return newWriter(helper, cursor, WarZoneSize, BattlefieldSize, FrontlineSize)
}

func newWriter(helper logream.WriteHelper, cursor, warZoneSize, battlefieldSize, frontlineSize int64) *Writer {
	return &Writer{
		helper:          helper,
		cursor:          cursor,
		warZoneSize:     warZoneSize,
		battlefieldSize: battlefieldSize,
		frontlineSize:   frontlineSize,
	}
}

// Cursor returns the byte offset the next record will be written at.
func (w *Writer) Cursor() int64 { return w.cursor }

// Add encodes data as a new record and appends it to the stream, returning
// the id (byte offset) later passed to Reader.Get to retrieve it.
func (w *Writer) Add(data []byte) (id int64, err error) {
	if int64(2*envelope.MaxVarintLen+len(data)+4) > w.battlefieldSize {
		return 0, errRecordTooLarge
	}

	id = w.cursor
	nWarZone := id / w.warZoneSize
	warZoneR := id % w.warZoneSize

	if nWarZone == 0 {
		left := w.warZoneSize - warZoneR
		dat := envelope.PutPlain(nil, data)
		if left > int64(len(dat)) {
			w.warZone = append(w.warZone, dat...)
		} else {
			w.warZone = append(w.warZone, dat[:left]...)
			w.warZoneIndex = suffix.Build(w.warZone, minRepeatWarZone)
			w.battlefield = append(w.battlefield[:0], dat[left:]...)
		}
		if err := w.write(dat); err != nil {
			return 0, err
		}
		return id, nil
	}

	nBattlefield := warZoneR / w.battlefieldSize
	battlefieldR := warZoneR % w.battlefieldSize

	if nBattlefield == 0 {
		left := w.battlefieldSize - battlefieldR
		dat := envelope.PutPlain(nil, data)
		if left > int64(len(dat)) {
			w.battlefield = append(w.battlefield, dat...)
		} else {
			w.battlefield = append(w.battlefield, dat[:left]...)
			w.battlefieldIndex = suffix.Build(w.battlefield, minRepeatBattlefield)
		}
		if err := w.write(dat); err != nil {
			return 0, err
		}
		return id, nil
	}

	// A war zone boundary spill here reseeds the battlefield buffer with
	// whatever bytes of this record's compressed form spilled past the
	// boundary, not with plain record data: the next war zone's first
	// battlefield is therefore indexed over compressed bytes rather than
	// original payload bytes. This mirrors the source codec's own behavior
	// at this boundary.
	left := w.warZoneSize - warZoneR
	dat := w.generateCompressed(data)
	if left <= int64(len(dat)) {
		w.battlefield = append(w.battlefield[:0], dat[left:]...)
	}
	if err := w.write(dat); err != nil {
		return 0, err
	}
	return id, nil
}

func (w *Writer) write(p []byte) error {
	if err := w.helper.Write(p); err != nil {
		return err
	}
	w.cursor += int64(len(p))
	return nil
}

// generateCompressed encodes data against the frozen war zone index, the
// frozen battlefield index, and data's own preceding bytes (the frontline),
// choosing for every position the cheapest of the three candidate
// back-references or, failing that, a one-byte literal.
func (w *Writer) generateCompressed(data []byte) []byte {
	dst := make([]byte, envelope.MaxVarintLen, envelope.MaxVarintLen+len(data))

	haveLiteral := false
	literalStart, literalLen := 0, 0
	addLiteral := func(start, n int) {
		if !haveLiteral {
			haveLiteral = true
			literalStart = start
			literalLen = 0
		}
		literalLen += n
	}
	flushLiteral := func() {
		if !haveLiteral || literalLen == 0 {
			haveLiteral = false
			return
		}
		dst = appendMark(dst, markLiteral, literalLen)
		dst = append(dst, data[literalStart:literalStart+literalLen]...)
		haveLiteral = false
		literalLen = 0
	}

	i := 0
	for {
		pattern := data[i:]
		if len(pattern) < minRepeatFrontline {
			addLiteral(i, len(pattern))
			break
		}

		var wzPos, wzLen, bfPos, bfLen int
		if w.warZoneIndex != nil {
			wzPos, wzLen = w.warZoneIndex.FindLongestRepeat(pattern)
		}
		if w.battlefieldIndex != nil {
			bfPos, bfLen = w.battlefieldIndex.FindLongestRepeat(pattern)
		}
		flOffset, flLen := suffix.FindLongestRepeatWindow(data, i, int(w.frontlineSize))

		best, sol := selectBest(profit(wzLen, 3), profit(bfLen, 2), profit(flLen, 1))

		step := 1
		if best > 0 {
			flushLiteral()
			switch sol {
			case 0:
				dst = appendMark(dst, markWarZone, wzLen)
				dst = appendPos(dst, int64(wzPos), 3)
				step = wzLen
			case 1:
				dst = appendMark(dst, markBattlefield, bfLen)
				dst = appendPos(dst, int64(bfPos), 2)
				step = bfLen
			default:
				dst = appendMark(dst, markFrontline, flLen)
				dst = appendPos(dst, int64(flOffset), 1)
				step = flLen
			}
		} else {
			addLiteral(i, 1)
		}
		i += step
	}
	flushLiteral()

	payload := dst[envelope.MaxVarintLen:]
	size := len(payload)
	var hdr [envelope.MaxVarintLen]byte
	n := binary.PutUvarint(hdr[:], uint64(size))
	start := envelope.MaxVarintLen - n
	copy(dst[start:envelope.MaxVarintLen], hdr[:n])

	result := dst[start:]
	crc := envelope.Mask(envelope.Checksum(data))
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc)
	return append(result, crcBuf[:]...)
}
