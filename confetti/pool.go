package confetti

// Pool manages reusable particles. Released slots are recycled with
// swap-and-pop, so the active particles are always Pool[:ActiveCount].
type Pool struct {
	Pool        []*Particle
	ActiveCount int
	MaxSize     int
}

// NewPool creates a pool with pre-allocated particles.
func NewPool(maxSize int) *Pool {
	pool := &Pool{
		Pool:    make([]*Particle, maxSize),
		MaxSize: maxSize,
	}
	for i := 0; i < maxSize; i++ {
		pool.Pool[i] = &Particle{PoolIndex: i}
	}
	return pool
}

// Acquire returns a zeroed particle, or nil when the pool is full.
func (p *Pool) Acquire() *Particle {
	if p.ActiveCount >= p.MaxSize {
		return nil
	}
	pt := p.Pool[p.ActiveCount]
	*pt = Particle{PoolIndex: p.ActiveCount}
	p.ActiveCount++
	return pt
}

// Release returns a particle to the pool using swap-and-pop.
func (p *Pool) Release(index int) {
	if index >= p.ActiveCount || index < 0 {
		return
	}
	lastIndex := p.ActiveCount - 1
	if index != lastIndex {
		p.Pool[index], p.Pool[lastIndex] = p.Pool[lastIndex], p.Pool[index]
		p.Pool[index].PoolIndex = index
	}
	p.ActiveCount--
}

// Clear marks every particle inactive.
func (p *Pool) Clear() {
	p.ActiveCount = 0
}

// ForEach iterates over active particles in order.
func (p *Pool) ForEach(fn func(*Particle)) {
	for i := 0; i < p.ActiveCount; i++ {
		fn(p.Pool[i])
	}
}

// ForEachReverse iterates over active particles in reverse order, which
// makes Release safe inside fn.
func (p *Pool) ForEachReverse(fn func(*Particle, int)) {
	for i := p.ActiveCount - 1; i >= 0; i-- {
		fn(p.Pool[i], i)
	}
}
