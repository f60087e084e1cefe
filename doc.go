// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package logream implements an append-only log codec.
//
// A log is an unbounded sequence of caller-supplied byte records. Appending
// a record returns its ID, the byte offset of its envelope in the logical
// output stream; that ID is the only handle a caller ever needs to read the
// record back. Two independent codecs implement this contract:
//
//	compress: dictionary-compresses each record against a growing
//	          in-memory dictionary, trading CPU at append time for a
//	          smaller on-disk stream.
//	lite:     stores every record verbatim, trading compression for a
//	          group-commit append path that batches concurrent writers
//	          into a single I/O.
//
// Both codecs read and write through the minimal helper contracts defined in
// this package. Neither codec owns storage directly; package storage
// provides ready-made in-memory and file-backed implementations of those
// contracts.
package logream
