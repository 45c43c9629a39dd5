package system

import (
	"bytes"
	"sync"
)

// maxPooledBuffer keeps oversized buffers from pinning memory in the pool.
const maxPooledBuffer = 1 << 20

// BufferPool reuses bytes.Buffer values for module rendering to keep
// garbage collector pressure low during batch runs.
type BufferPool struct {
	pool sync.Pool
}

var globalPool = NewBufferPool()

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// GetBuffer returns an empty buffer from the shared pool.
func GetBuffer() *bytes.Buffer {
	return globalPool.Get()
}

// PutBuffer hands buf back to the shared pool.
func PutBuffer(buf *bytes.Buffer) {
	globalPool.Put(buf)
}

func (p *BufferPool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	p.pool.Put(buf)
}
