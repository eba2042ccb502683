package rate

func (p *CachePurger) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sched != nil
}
