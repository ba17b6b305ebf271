// Package puzzle provides the answer matcher and the completed-task set
// consumed by the dialogue system. The core does not interpret task
// identifiers; it only stores membership.
package puzzle

import (
	"sort"
	"strings"
)

// MatchAnswer resolves a typed answer against the accepted answers for a
// puzzle. Comparison is case-insensitive; a unique prefix or word-level
// prefix of exactly one accepted answer also matches, so "override c" finds
// "override code". Ambiguous prefixes do not match.
//
// Postcondition: Returns (matched answer, true) on a unique match, or
// ("", false).
func MatchAnswer(typed string, accepted []string) (string, bool) {
	trimmed := strings.TrimSpace(typed)
	if trimmed == "" {
		return "", false
	}
	normalized := strings.ToLower(trimmed)

	partial := -1
	ambiguous := false
	for i, answer := range accepted {
		candidate := strings.ToLower(strings.TrimSpace(answer))
		if candidate == normalized {
			return answer, true
		}

		match := strings.HasPrefix(candidate, normalized)
		if !match {
			for _, word := range strings.Fields(candidate) {
				if strings.HasPrefix(word, normalized) {
					match = true
					break
				}
			}
		}

		if match {
			if partial != -1 {
				ambiguous = true
				continue
			}
			partial = i
		}
	}

	if partial != -1 && !ambiguous {
		return accepted[partial], true
	}
	return "", false
}

// TaskSet tracks completed trigger identifiers for the dialogue system.
type TaskSet struct {
	done map[string]bool
}

// NewTaskSet creates a TaskSet seeded with the given identifiers.
func NewTaskSet(ids []string) *TaskSet {
	s := &TaskSet{done: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.done[id] = true
		}
	}
	return s
}

// Complete records a trigger identifier as done.
func (s *TaskSet) Complete(id string) {
	if id != "" {
		s.done[id] = true
	}
}

// Done reports whether the identifier has been completed.
func (s *TaskSet) Done(id string) bool {
	return s.done[id]
}

// List returns the completed identifiers in sorted order, for persistence.
func (s *TaskSet) List() []string {
	out := make([]string, 0, len(s.done))
	for id := range s.done {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
