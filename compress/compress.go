// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package compress implements the compressing append-only log codec.
//
// Records are grouped into three nested regions, each of which is searched
// in turn for the longest back-reference to the record currently being
// written:
//
//   - The first 16 MiB written to a stream is the war zone. It is written
//     uncompressed and, once full, is indexed once and frozen: every later
//     record in the stream may reference it with a 3-byte position.
//   - Within every war zone after the first, the first 64 KiB is the
//     battlefield. It too is written uncompressed, indexed once it fills,
//     and frozen for the remainder of that war zone: later records in the
//     same war zone may reference it with a 2-byte position.
//   - Every record may additionally reference up to 256 bytes of its own
//     immediately preceding, already-written bytes (the frontline) with a
//     1-byte position, including bytes the record itself has just emitted.
//
// A record that cannot beat the cost of encoding a back-reference is stored
// as a literal run instead. The encoder always picks the cheapest of the
// three candidate back-references (by bytes saved, ties favoring the war
// zone over the battlefield over the frontline) or falls back to a literal.
package compress

// Region sizes, matching the three nested dictionaries described above.
const (
	WarZoneSize     = 1 << 24 // 16 MiB
	BattlefieldSize = 1 << 16 // 64 KiB
	FrontlineSize   = 1 << 8  // 256 B
)

// Minimum match lengths below which a back-reference of that kind is never
// profitable to emit, regardless of position cost.
const (
	minRepeatFrontline   = 3
	minRepeatBattlefield = minRepeatFrontline + 1
	minRepeatWarZone     = minRepeatBattlefield + 1
)

// inlineMax is the largest length a mark byte can carry without a trailing
// varint.
const inlineMax = 63

// Mark byte layout. Each mark occupies a disjoint 64-value range of the
// byte, with the low bits (when non-zero) encoding a length inline.
const (
	markWarZone     byte = 0
	markBattlefield byte = 64
	markFrontline   byte = 128
	markLiteral     byte = 192
)

// Error is the error type returned by this package's exported functions.
type Error string

func (e Error) Error() string { return "logream/compress: " + string(e) }

const (
	errRecordTooLarge = Error("record too large for a battlefield")
	errCorrupt        = Error("corrupt record")
)

// MaxRecordSize is the largest payload Writer.Add accepts: a record must fit
// in a single battlefield even in the worst case where its entire compressed
// form is a single oversized literal run.
const MaxRecordSize = BattlefieldSize - 2*5 - 4
