// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lite

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/logream"
	"github.com/dsnet/logream/internal/envelope"
)

// Reader retrieves records previously written by a Writer. A Reader holds
// no mutable decode state and is safe for concurrent use.
type Reader struct {
	helper logream.ReadHelper
}

// NewReader returns a Reader retrieving records from helper.
func NewReader(helper logream.ReadHelper) *Reader {
	return &Reader{helper: helper}
}

// Get decodes the record at id and appends it to dst, returning the
// extended slice and the id of the record immediately following it.
func (r *Reader) Get(id int64, dst []byte) (result []byte, next int64, err error) {
	defer errs.Recover(&err)

	payload, expectedCRC, total, ok := envelope.ReadFull(r.helper, id, nil)
	errs.Assert(ok, errCorrupt)
	errs.Assert(envelope.Checksum(payload) == expectedCRC, errCorrupt)
	return append(dst, payload...), id + int64(total), nil
}
