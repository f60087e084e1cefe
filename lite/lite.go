// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lite implements the uncompressed append-only log codec: every
// record is written as a plain envelope (varint length, payload, masked
// CRC-32C) with no back-referencing, trading the compress package's space
// savings for write throughput and a much simpler decoder.
//
// Writer batches concurrent Add calls the way a write-ahead log with group
// commit does: the first caller to arrive at an empty queue becomes that
// batch's leader, encodes and writes every request queued by the time its
// write begins in one helper.Write call, and wakes the others with the
// shared outcome. This turns N concurrent single-record appends into one
// syscall instead of N.
package lite

// Error is the error type returned by this package's exported functions.
type Error string

func (e Error) Error() string { return "logream/lite: " + string(e) }

const errCorrupt = Error("corrupt record")
