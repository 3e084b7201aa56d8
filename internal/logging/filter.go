// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Namespace is the service's own top-level log origin. By default only
// records from this namespace are emitted; dependency logs are dropped.
const Namespace = "relaybot"

// allTargets disables origin filtering when present in the target list.
const allTargets = "all"

// TargetFilter decides from a record's origin whether it may be emitted.
// It is immutable after construction and safe for concurrent use.
type TargetFilter struct {
	patterns []*regexp.Regexp
	allowAll bool
}

// NewTargetFilter compiles the given origin patterns. An empty list means
// []string{Namespace}. Patterns that fail to compile are dropped and
// reported on diag (os.Stderr when nil); the router does not exist yet, so
// these diagnostics cannot go through it.
//
// The literal "all" (any case) anywhere in the list makes every origin pass.
func NewTargetFilter(patterns []string, diag io.Writer) *TargetFilter {
	if diag == nil {
		diag = os.Stderr
	}
	if len(patterns) == 0 {
		patterns = []string{Namespace}
	}

	f := &TargetFilter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		if strings.EqualFold(p, allTargets) {
			f.allowAll = true
		}
		re, err := regexp.Compile(p)
		if err != nil {
			fmt.Fprintf(diag, "target regex '%s' failed to compile with error: %v\n", p, err)
			continue
		}
		f.patterns = append(f.patterns, re)
	}
	return f
}

// Allows reports whether a record with the given origin passes the filter.
func (f *TargetFilter) Allows(origin string) bool {
	if f.allowAll {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// AllowAll reports whether filtering is disabled.
func (f *TargetFilter) AllowAll() bool {
	return f.allowAll
}

// Patterns returns the source text of every pattern that compiled.
func (f *TargetFilter) Patterns() []string {
	out := make([]string, len(f.patterns))
	for i, re := range f.patterns {
		out[i] = re.String()
	}
	return out
}
