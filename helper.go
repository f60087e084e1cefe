// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package logream

// WriteHelper is the sole storage collaborator a codec needs to append data.
// Write must append p to the end of the log and report any I/O failure; a
// codec never seeks or rewrites previously written bytes.
type WriteHelper interface {
	Write(p []byte) error
}

// ReadHelper is the sole storage collaborator a codec needs to read data
// back. ReadAt must copy exactly len(scratch) bytes starting at offset into
// scratch. Implementations backing the compress codec must be safe to call
// concurrently with other ReadAt calls (see compress.Reader);
// no codec ever calls ReadAt concurrently with a Write on the same helper.
type ReadHelper interface {
	ReadAt(offset int64, scratch []byte) error
}

// Error is the wrapper type for errors specific to this module.
type Error string

func (e Error) Error() string { return "logream: " + string(e) }
