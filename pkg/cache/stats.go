package cache

import (
	"sync/atomic"
	"time"
)

// Statistics counts cache traffic. All methods are safe for concurrent use.
type Statistics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	deletes   atomic.Int64
	evictions atomic.Int64
	size      atomic.Int64
	peak      atomic.Int64
	started   time.Time
}

// NewStatistics returns zeroed statistics starting now.
func NewStatistics() *Statistics {
	return &Statistics{started: time.Now()}
}

func (s *Statistics) Hit()      { s.hits.Add(1) }
func (s *Statistics) Miss()     { s.misses.Add(1) }
func (s *Statistics) Set()      { s.sets.Add(1) }
func (s *Statistics) Delete()   { s.deletes.Add(1) }
func (s *Statistics) Eviction() { s.evictions.Add(1) }

// UpdateSize records the current entry count and raises the peak if needed.
func (s *Statistics) UpdateSize(n int64) {
	s.size.Store(n)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (s *Statistics) Hits() int64      { return s.hits.Load() }
func (s *Statistics) Misses() int64    { return s.misses.Load() }
func (s *Statistics) Sets() int64      { return s.sets.Load() }
func (s *Statistics) Deletes() int64   { return s.deletes.Load() }
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// CurrentSize returns the last recorded entry count.
func (s *Statistics) CurrentSize() int64 { return s.size.Load() }

// MaxSize returns the largest entry count seen.
func (s *Statistics) MaxSize() int64 { return s.peak.Load() }

// HitRatio returns hits over lookups, 0 before the first lookup.
func (s *Statistics) HitRatio() float64 {
	hits, misses := s.Hits(), s.Misses()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// Summary is a point-in-time copy of Statistics.
type Summary struct {
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	Sets        int64         `json:"sets"`
	Deletes     int64         `json:"deletes"`
	Evictions   int64         `json:"evictions"`
	CurrentSize int64         `json:"current_size"`
	MaxSize     int64         `json:"max_size"`
	HitRatio    float64       `json:"hit_ratio"`
	Uptime      time.Duration `json:"uptime"`
}

// Summary returns a snapshot of s.
func (s *Statistics) Summary() Summary {
	return Summary{
		Hits:        s.Hits(),
		Misses:      s.Misses(),
		Sets:        s.Sets(),
		Deletes:     s.Deletes(),
		Evictions:   s.Evictions(),
		CurrentSize: s.CurrentSize(),
		MaxSize:     s.MaxSize(),
		HitRatio:    s.HitRatio(),
		Uptime:      time.Since(s.started),
	}
}
