// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a read-only summary of one invocation's
// aggregated net usage and template rule hits, shown only when the
// caller asks for verbose output. It never feeds back into generation.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"

	"github.com/sjalloq/slang-autos/autos"
)

// WidthHistogram buckets a set of net widths onto a log-scaled axis,
// the same log-bucketing a latency histogram uses for event
// durations, repurposed here for bit widths instead of nanoseconds.
type WidthHistogram struct {
	buckets []bucket
}

type bucket struct {
	lo, hi float64
	count  int
}

// NewWidthHistogram builds a histogram over nets, log-bucketed into n
// buckets spanning the observed width range.
func NewWidthHistogram(nets []*autos.NetUsage, n int) WidthHistogram {
	if len(nets) == 0 || n <= 0 {
		return WidthHistogram{}
	}
	widths := make([]float64, len(nets))
	for i, u := range nets {
		w := float64(u.Width)
		if w < 1 {
			w = 1
		}
		widths[i] = w
	}

	sc := scale.NewLog(widths, 1)
	mapped := vec.Map(func(w float64) float64 { return sc.Of(w) }, widths)

	buckets := make([]bucket, n)
	minW, maxW := widths[0], widths[0]
	for _, w := range widths {
		if w < minW {
			minW = w
		}
		if w > maxW {
			maxW = w
		}
	}
	for i := range buckets {
		buckets[i].lo, buckets[i].hi = bucketBounds(minW, maxW, n, i)
	}
	for i, f := range mapped {
		idx := int(f * float64(n))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].count++
		_ = widths[i]
	}
	return WidthHistogram{buckets: buckets}
}

func bucketBounds(minW, maxW float64, n, i int) (lo, hi float64) {
	span := maxW - minW
	if span <= 0 {
		return minW, maxW
	}
	lo = minW + span*float64(i)/float64(n)
	hi = minW + span*float64(i+1)/float64(n)
	return
}

// String renders one line per non-empty bucket.
func (h WidthHistogram) String() string {
	var b strings.Builder
	for _, bk := range h.buckets {
		if bk.count == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %4.0f-%-4.0f bits: %d net(s)\n", bk.lo, bk.hi, bk.count)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RuleHits counts how many times each AUTO_TEMPLATE rule, keyed by its
// defining file, line, and port regex text, actually matched a port
// during one invocation. A rule with zero hits is very often a typo in
// its port_regex.
type RuleHits struct {
	counts map[string]int
	order  []string
}

// NewRuleHits returns an empty hit counter.
func NewRuleHits() *RuleHits {
	return &RuleHits{counts: map[string]int{}}
}

// Hit records one match of the rule identified by key.
func (r *RuleHits) Hit(key string) {
	if _, ok := r.counts[key]; !ok {
		r.order = append(r.order, key)
	}
	r.counts[key]++
}

// ZeroHitKeys reports every key in tracked that was never Hit.
func (r *RuleHits) ZeroHitKeys(tracked []string) []string {
	var out []string
	for _, k := range tracked {
		if r.counts[k] == 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// String renders hit counts in first-seen order.
func (r *RuleHits) String() string {
	var b strings.Builder
	for _, k := range r.order {
		fmt.Fprintf(&b, "  %s: %d hit(s)\n", k, r.counts[k])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
