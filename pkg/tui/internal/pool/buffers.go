// ABOUTME: sync.Pool wrappers for the byte buffers and builders drivers render frames into
// ABOUTME: Buffers come back reset; oversized ones are dropped instead of pinned in the pool

package pool

import (
	"bytes"
	"strings"
	"sync"
)

// maxPooled is the largest capacity returned to a pool. A frame larger than
// this is rare and its buffer is left to the garbage collector.
const maxPooled = 64 << 10

var bytesBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBytesBuffer returns an empty bytes.Buffer.
func GetBytesBuffer() *bytes.Buffer {
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBytesBuffer returns buf to the pool.
func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooled {
		return
	}
	buf.Reset()
	bytesBufferPool.Put(buf)
}

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// GetStringBuilder returns an empty strings.Builder.
func GetStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder returns sb to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil || sb.Cap() > maxPooled {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}
