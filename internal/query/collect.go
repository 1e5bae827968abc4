package query

// collector accumulates kept lines under a cap.
type collector interface {
	// add stores line and reports whether scanning should continue.
	add(line string) bool
	lines() []string
	truncated() bool
}

func newCollector(limit int, policy CapPolicy) collector {
	if limit <= 0 {
		return &firstN{limit: 0}
	}
	if policy == CapLatest {
		return &lastN{ring: make([]string, limit)}
	}
	return &firstN{limit: limit}
}

// firstN keeps the earliest matches and stops the scan at the first match
// past the cap. A zero limit keeps everything.
type firstN struct {
	limit int
	out   []string
	cut   bool
}

func (c *firstN) add(line string) bool {
	if c.limit > 0 && len(c.out) == c.limit {
		c.cut = true
		return false
	}
	c.out = append(c.out, line)
	return true
}

func (c *firstN) lines() []string { return c.out }

func (c *firstN) truncated() bool { return c.cut }

// lastN keeps the final len(ring) matches using a ring buffer.
type lastN struct {
	ring  []string
	idx   int
	count int
	seen  int
}

func (c *lastN) add(line string) bool {
	c.ring[c.idx] = line
	c.idx = (c.idx + 1) % len(c.ring)
	if c.count < len(c.ring) {
		c.count++
	}
	c.seen++
	return true
}

func (c *lastN) lines() []string {
	lines := make([]string, c.count)
	if c.count == len(c.ring) {
		for i := 0; i < c.count; i++ {
			lines[i] = c.ring[(c.idx+i)%len(c.ring)]
		}
	} else {
		copy(lines, c.ring[:c.count])
	}
	return lines
}

func (c *lastN) truncated() bool { return c.seen > len(c.ring) }
