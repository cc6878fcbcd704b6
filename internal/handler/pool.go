package handler

import (
	"bytes"
	"sync"
)

// bufferPool recycles JSON encode buffers; state snapshots are the bulk of
// response bytes and are served on every poll
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 2048))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
