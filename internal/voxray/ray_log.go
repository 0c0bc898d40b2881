package voxray

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

type Category uint8

const (
	SkyMiss        Category = iota // ray escaped to the environment
	DepthExhausted                 // scatter requested past MaxDepth
	Absorbed                       // surface did not scatter
	SpecialHit                     // primary ray hit a special voxel
)

var categoryNames = [...]string{"sky_miss", "depth_exhausted", "absorbed", "special_hit"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// TraceEvent records how one path terminated.
type TraceEvent struct {
	Category  Category
	Depth     int
	Point     Vec3 // hit point, zero for sky misses
	Direction Vec3
	Sphere    bool
}

// TraceLog collects terminal events from concurrent Trace calls.
// Only the first Keep events are stored; counters cover all of them.
type TraceLog struct {
	Keep int

	mu       sync.Mutex
	events   []TraceEvent
	counts   map[Category]int
	maxDepth int
}

func NewTraceLog(keep int) *TraceLog {
	return &TraceLog{Keep: keep, counts: make(map[Category]int)}
}

func (l *TraceLog) visit(depth int) {
	l.mu.Lock()
	if depth > l.maxDepth {
		l.maxDepth = depth
	}
	l.mu.Unlock()
}

func (l *TraceLog) log(e TraceEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[e.Category]++
	if e.Depth > l.maxDepth {
		l.maxDepth = e.Depth
	}
	if len(l.events) < l.Keep {
		l.events = append(l.events, e)
	}
}

func (l *TraceLog) Count(c Category) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[c]
}

// MaxDepth is the deepest recursion level any Trace call reached.
func (l *TraceLog) MaxDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxDepth
}

func (l *TraceLog) Events() []TraceEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]TraceEvent(nil), l.events...)
}

func (l *TraceLog) Stats(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cats := make([]int, 0, len(l.counts))
	for c := range l.counts {
		cats = append(cats, int(c))
	}
	sort.Ints(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "Trace %s: %d\n", Category(c), l.counts[Category(c)])
	}
	fmt.Fprintf(w, "Trace max depth: %d\n", l.maxDepth)
}
