package connect

import (
	"runtime"
	"sync"

	"github.com/san-kum/particlenet/internal/field"
)

// Parallel compares all pairs like Naive, splitting rows across workers. Rows
// are cut into more chunks than workers since later rows have fewer pairs.
// Links come out in the same order as Naive.
type Parallel struct {
	workers  int
	minRows  int
	buffers  [][]Link
	chunking int
}

func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Parallel{workers: workers, minRows: 256, chunking: 4}
}

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Pairs(ps []field.Particle, limit float64, dst []Link) []Link {
	n := len(ps)
	if n < p.minRows || p.workers == 1 {
		return Naive{}.Pairs(ps, limit, dst)
	}

	chunks := p.workers * p.chunking
	chunkSize := (n + chunks - 1) / chunks
	if cap(p.buffers) < chunks {
		p.buffers = make([][]Link, chunks)
	}
	p.buffers = p.buffers[:chunks]

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		local := p.buffers[c][:0]
		if start >= end {
			p.buffers[c] = local
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(c, start, end int, local []Link) {
			defer wg.Done()
			defer func() { <-sem }()
			for i := start; i < end; i++ {
				pi := ps[i].Pos
				for j := i + 1; j < n; j++ {
					d := pi.Dist(ps[j].Pos)
					if d < limit {
						local = append(local, Link{I: i, J: j, Dist: d, Alpha: Opacity(d, limit)})
					}
				}
			}
			p.buffers[c] = local
		}(c, start, end, local)
	}
	wg.Wait()

	for _, local := range p.buffers {
		dst = append(dst, local...)
	}
	return dst
}
