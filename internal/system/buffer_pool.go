package system

import (
	"image"
	"sync"
)

// GrayPool reuses *image.Gray buffers keyed by their rectangle. Candidate
// export renders thousands of identically sized patches.
type GrayPool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewGrayPool()

// NewGrayPool returns an empty pool.
func NewGrayPool() *GrayPool {
	return &GrayPool{pools: make(map[image.Rectangle]*sync.Pool)}
}

// GetGray returns an *image.Gray of the given bounds from the shared pool.
// Its contents are undefined.
func GetGray(rect image.Rectangle) *image.Gray {
	return globalPool.Get(rect)
}

// PutGray returns img to the shared pool.
func PutGray(img *image.Gray) {
	globalPool.Put(img)
}

func (p *GrayPool) Get(rect image.Rectangle) *image.Gray {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewGray(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.Gray)
}

func (p *GrayPool) Put(img *image.Gray) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
