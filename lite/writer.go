// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lite

import (
	"sync"

	"github.com/dsnet/logream"
	"github.com/dsnet/logream/internal/envelope"
)

// request is one caller's queued Add, handed off between the goroutine that
// enqueued it and whichever goroutine ends up as the batch's leader.
type request struct {
	data []byte

	pos int64
	err error

	// ready is closed once a leader has resolved pos/err for this request.
	// Only followers (requests that did not become the leader themselves)
	// ever receive on it.
	ready chan struct{}
}

// Writer appends records to a stream with no compression, batching
// concurrent Add calls into a single underlying write. A Writer is safe for
// concurrent use by multiple goroutines.
type Writer struct {
	helper logream.WriteHelper

	mu     sync.Mutex
	cursor int64
	queue  []*request
}

// NewWriter returns a Writer that appends to helper starting at cursor,
// which must equal the number of bytes already written to the underlying
// stream (0 for a brand new stream).
func NewWriter(helper logream.WriteHelper, cursor int64) *Writer {
	return &Writer{helper: helper, cursor: cursor}
}

// Add encodes data as a new record and appends it to the stream, returning
// the id (byte offset) later passed to Reader.Get to retrieve it. Add may
// be called concurrently from multiple goroutines; calls overlapping in
// time may be served by a single underlying write.
func (w *Writer) Add(data []byte) (int64, error) {
	req := &request{data: data, ready: make(chan struct{})}

	w.mu.Lock()
	w.queue = append(w.queue, req)
	leader := len(w.queue) == 1
	w.mu.Unlock()

	if !leader {
		<-req.ready
		if req.err != nil {
			return 0, req.err
		}
		return req.pos, nil
	}

	// Leader: encode and write every request queued so far, then check
	// whether more arrived while the write was in flight and, if so, keep
	// draining the queue rather than handing leadership to a new goroutine.
	for {
		w.mu.Lock()
		batch := w.queue
		base := w.cursor
		w.mu.Unlock()

		var buf []byte
		pos := make([]int64, len(batch))
		for i, r := range batch {
			pos[i] = base + int64(len(buf))
			buf = envelope.PutPlain(buf, r.data)
		}
		writeErr := w.helper.Write(buf)

		w.mu.Lock()
		if writeErr == nil {
			w.cursor += int64(len(buf))
		}
		w.queue = w.queue[len(batch):]
		more := len(w.queue) > 0
		w.mu.Unlock()

		for i, r := range batch {
			r.pos, r.err = pos[i], writeErr
			if r != req {
				close(r.ready)
			}
		}
		if !more {
			break
		}
	}

	if req.err != nil {
		return 0, req.err
	}
	return req.pos, nil
}
