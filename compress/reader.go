// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package compress

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/logream"
	"github.com/dsnet/logream/internal/envelope"
)

// Reader retrieves records previously written by a Writer. A Reader holds
// no mutable decode state and is safe for concurrent use.
type Reader struct {
	helper                       logream.ReadHelper
	warZoneSize, battlefieldSize int64
}

// NewReader returns a Reader retrieving records from helper, which must use
// the same region sizes as the Writer that produced them (NewWriter always
// does).
func NewReader(helper logream.ReadHelper) *Reader {
	return newReader(helper, WarZoneSize, BattlefieldSize)
}

func newReader(helper logream.ReadHelper, warZoneSize, battlefieldSize int64) *Reader {
	return &Reader{helper: helper, warZoneSize: warZoneSize, battlefieldSize: battlefieldSize}
}

// Get decodes the record at id and appends it to dst, returning the
// extended slice and the id of the record immediately following it.
// Passing dst[:0] (or nil) from the caller avoids accumulating records
// across calls. A malformed or corrupted envelope is reported as an error
// rather than panicking the caller, even though decoding internally relies
// on panic/recover to unwind out of a partially-parsed mark stream.
func (r *Reader) Get(id int64, dst []byte) (result []byte, next int64, err error) {
	defer errs.Recover(&err)

	payload, expectedCRC, total, ok := envelope.ReadFull(r.helper, id, nil)
	errs.Assert(ok, errCorrupt)

	warZoneR := id % r.warZoneSize
	if id/r.warZoneSize == 0 || warZoneR/r.battlefieldSize == 0 {
		errs.Assert(envelope.Checksum(payload) == expectedCRC, errCorrupt)
		return append(dst, payload...), id + int64(total), nil
	}

	battlefieldPos := id - warZoneR
	result = r.decodeMarks(payload, dst, battlefieldPos)
	errs.Assert(envelope.Checksum(result[len(dst):]) == expectedCRC, errCorrupt)
	return result, id + int64(total), nil
}

// decodeMarks walks a compressed payload's mark stream, appending the
// reconstructed record to dst. It panics with a package Error on any
// malformed mark, length, or position; Get recovers it.
func (r *Reader) decodeMarks(payload, dst []byte, battlefieldPos int64) []byte {
	p := payload
	for len(p) > 0 {
		mark := p[0]
		p = p[1:]

		switch {
		case mark < markBattlefield:
			var length int
			var pos int64
			var ok bool
			length, p, ok = takeLength(int(mark-markWarZone), p)
			errs.Assert(ok, errCorrupt)
			pos, p, ok = takePos(p, 3)
			errs.Assert(ok, errCorrupt)
			buf := make([]byte, length)
			errs.Panic(r.helper.ReadAt(pos, buf))
			dst = append(dst, buf...)

		case mark < markFrontline:
			var length int
			var pos int64
			var ok bool
			length, p, ok = takeLength(int(mark-markBattlefield), p)
			errs.Assert(ok, errCorrupt)
			pos, p, ok = takePos(p, 2)
			errs.Assert(ok, errCorrupt)
			buf := make([]byte, length)
			errs.Panic(r.helper.ReadAt(battlefieldPos+pos, buf))
			dst = append(dst, buf...)

		case mark < markLiteral:
			var length int
			var pos int64
			var ok bool
			length, p, ok = takeLength(int(mark-markFrontline), p)
			errs.Assert(ok, errCorrupt)
			pos, p, ok = takePos(p, 1)
			errs.Assert(ok, errCorrupt)
			idx := len(dst) - (int(pos) + 1)
			errs.Assert(idx >= 0, errCorrupt)
			for k := 0; k < length; k++ {
				dst = append(dst, dst[idx+k])
			}

		default:
			var length int
			var ok bool
			length, p, ok = takeLength(int(mark-markLiteral), p)
			errs.Assert(ok && length <= len(p), errCorrupt)
			dst = append(dst, p[:length]...)
			p = p[length:]
		}
	}
	return dst
}
