package kernel

import (
	"math"
	"sync"
)

// Gaussian1D generates a normalized 1D Gaussian kernel for the given radius
// (used as sigma). The kernel size is 2*ceil(radius*3)+1, covering three
// standard deviations. For radius <= 0 it returns the identity kernel [1].
func Gaussian1D(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}

	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	kernel := make([]float32, size)
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// kernelCache caches generated kernels keyed by radius quantized to 0.01.
// Brush radii repeat heavily within a stroke, so almost every stamp after
// the first hits the cache.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = &kernelCache{
	cache:  make(map[int][]float32),
	maxLen: 64,
}

func (c *kernelCache) get(radius float64) []float32 {
	key := int(radius * 100)

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := Gaussian1D(radius)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half the cache; radii are few enough that LRU is overkill.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussian1D returns a cached Gaussian kernel for the radius.
func CachedGaussian1D(radius float64) []float32 {
	return defaultKernelCache.get(radius)
}
