package cleaner

import (
	"strings"
	"sync"
)

// Decision is the answer to a deletion prompt
type Decision int

const (
	// DecisionNo leaves the item and moves on
	DecisionNo Decision = iota
	// DecisionYes deletes the item
	DecisionYes
	// DecisionAll deletes the item and every later one without asking
	DecisionAll
	// DecisionSkipAll deletes nothing more and ends the pass
	DecisionSkipAll
)

// String returns the prompt token for the decision
func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionAll:
		return "all"
	case DecisionSkipAll:
		return "skip all"
	default:
		return "no"
	}
}

// ParseDecision maps a typed answer to a Decision. The second return value
// is false for input that is not a recognized token.
func ParseDecision(input string) (Decision, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(input), " ")) {
	case "y", "yes":
		return DecisionYes, true
	case "n", "no":
		return DecisionNo, true
	case "a", "all":
		return DecisionAll, true
	case "s", "skip", "skip all", "skipall", "skip_all":
		return DecisionSkipAll, true
	default:
		return DecisionNo, false
	}
}

// RequestKind says what a prompt is about
type RequestKind int

const (
	RequestEmptyFolder RequestKind = iota
	RequestDuplicate
)

// String returns a short label for the request kind
func (k RequestKind) String() string {
	if k == RequestDuplicate {
		return "duplicate"
	}
	return "empty folder"
}

// Request describes one item awaiting a decision
type Request struct {
	Kind RequestKind
	// Path is the item that would be deleted
	Path string
	// Original is the kept file for duplicates, empty otherwise
	Original string
}

// Decider answers deletion prompts. Implementations may block.
type Decider interface {
	Decide(req Request) Decision
}

// DeciderFunc adapts a function to the Decider interface
type DeciderFunc func(req Request) Decision

// Decide calls f(req)
func (f DeciderFunc) Decide(req Request) Decision {
	return f(req)
}

// Always returns a Decider giving the same answer to every request
func Always(d Decision) Decider {
	return DeciderFunc(func(Request) Decision { return d })
}

// Sequence replays a fixed list of answers and records every request.
// Once the list is exhausted it answers DecisionNo.
type Sequence struct {
	mu       sync.Mutex
	answers  []Decision
	requests []Request
}

// NewSequence creates a Sequence with the given answers
func NewSequence(answers ...Decision) *Sequence {
	return &Sequence{answers: answers}
}

// Decide implements Decider
func (s *Sequence) Decide(req Request) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.requests) > len(s.answers) {
		return DecisionNo
	}
	return s.answers[len(s.requests)-1]
}

// Requests returns the requests seen so far
func (s *Sequence) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}
