// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package envelope implements the on-disk record framing shared by the
// compress and lite codecs:
//
//	Envelope := Varint(payload_size) Payload[payload_size] U32_LE(masked_crc)
//
// The checksum is CRC-32C (Castagnoli) computed over the original payload
// bytes, rotated and offset before storage to avoid the usual pitfall of
// computing a CRC over data that itself embeds a CRC (the same "masked CRC"
// trick LevelDB and its descendants use).
package envelope

import (
	"encoding/binary"
	"hash/crc32"
)

// MaxVarintLen is the maximum number of bytes a base-128 varint occupies for
// a 32-bit length.
const MaxVarintLen = binary.MaxVarintLen32

const maskDelta = 0xa282ead8

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Checksum returns the unmasked CRC-32C of p.
func Checksum(p []byte) uint32 {
	return crc32.Checksum(p, castagnoli)
}

// Mask returns a masked representation of crc, safe to embed in data that
// the checksum itself covers.
func Mask(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask reverses Mask.
func Unmask(maskedCRC uint32) uint32 {
	rot := maskedCRC - maskDelta
	return (rot >> 17) | (rot << 15)
}

// PutVarint appends the base-128 varint encoding of v to dst.
func PutVarint(dst []byte, v uint32) []byte {
	var buf [MaxVarintLen]byte
	n := binary.PutUvarint(buf[:], uint64(v))
	return append(dst, buf[:n]...)
}

// VarintLen reports the number of bytes PutVarint would append for v.
func VarintLen(v uint32) int {
	n := 1
	for v >= 128 {
		v >>= 7
		n++
	}
	return n
}

// PutPlain appends a full plain envelope for payload to dst and returns the
// extended slice.
func PutPlain(dst []byte, payload []byte) []byte {
	dst = PutVarint(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	masked := Mask(Checksum(payload))
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], masked)
	return append(dst, crcBuf[:]...)
}

// ReadHelper is the minimal random-read contract ReadFull needs; it matches
// logream.ReadHelper without importing the root package, keeping this
// internal package dependency-free of the public API surface.
type ReadHelper interface {
	ReadAt(offset int64, scratch []byte) error
}

// ReadFull decodes the envelope at id: the size varint, the payload, and the
// trailing masked CRC. It returns the payload bytes (a view into scratch, or
// a freshly allocated slice if scratch was too small), the unmasked expected
// CRC, and the total number of bytes the envelope occupies on the wire.
//
// ReadFull does not verify the checksum; plain and compressed payloads
// checksum different things (the stored bytes vs. the reconstructed
// original), so only the caller knows what to hash once it has decided
// which one applies. ok is false if the varint header is malformed,
// mirroring the original codec's "return 0" sentinel for a malformed
// envelope.
func ReadFull(helper ReadHelper, id int64, scratch []byte) (payload []byte, expectedCRC uint32, total int, ok bool) {
	var header [MaxVarintLen]byte
	if err := helper.ReadAt(id, header[:]); err != nil {
		return nil, 0, 0, false
	}
	size, headerLen := binary.Uvarint(header[:])
	if headerLen <= 0 {
		return nil, 0, 0, false
	}

	rest := int(size) + 4
	if cap(scratch) < rest {
		scratch = make([]byte, rest)
	} else {
		scratch = scratch[:rest]
	}
	if err := helper.ReadAt(id+int64(headerLen), scratch); err != nil {
		return nil, 0, 0, false
	}

	masked := binary.LittleEndian.Uint32(scratch[size:])
	return scratch[:size], Unmask(masked), headerLen + rest, true
}
