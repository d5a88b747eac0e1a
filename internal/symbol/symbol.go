// Package symbol implements the process-wide symbol interner (spec §4.1).
//
// A Symbol is a (label, tag) pair. Labels are hash-consed so that equality
// of the label field reduces to pointer/handle equality; tag 0 denotes a
// source-level name, a nonzero tag denotes a fresh alpha-renamed copy drawn
// from a strictly increasing counter.
package symbol

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Symbol is a pair (label, tag). Two symbols are equal iff their labels
// were interned to the same handle and their tags match.
type Symbol struct {
	label *string
	Tag   uint64
}

// Label returns the symbol's displayed name.
func (s Symbol) Label() string {
	if s.label == nil {
		return ""
	}
	return *s.label
}

// Equal implements spec §4.1's symbol_eq: label-handle identity plus tag
// equality.
func (s Symbol) Equal(o Symbol) bool {
	return s.label == o.label && s.Tag == o.Tag
}

// IsZero reports whether s is the unset Symbol (never produced by Table).
func (s Symbol) IsZero() bool { return s.label == nil }

func (s Symbol) String() string {
	if s.Tag == 0 {
		return s.Label()
	}
	return fmt.Sprintf("%s:%d", s.Label(), s.Tag)
}

// Table is the engine's symbol interner: a hash-consing label pool plus the
// monotonic fresh-tag counter used for alpha-renaming. Table is safe to wrap
// in an *engine.Engine value and passed explicitly per spec §9's guidance
// for languages without convenient globals; it holds its own mutex since the
// intern map is mutated from the parser and generator alike.
type Table struct {
	mu      sync.Mutex
	labels  map[string]*string
	counter atomic.Uint64
}

// NewTable constructs an empty interner with the fresh-tag counter
// initialized to 0, matching the original C implementation's
// global_counter seed so that the first fresh tag minted is 1.
func NewTable() *Table {
	return &Table{labels: make(map[string]*string)}
}

// Intern returns the canonical handle for label, creating one on first use.
// Intern is idempotent and order-independent.
func (t *Table) Intern(label string) *string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.labels[label]; ok {
		return h
	}
	h := new(string)
	*h = label
	t.labels[label] = h
	return h
}

// Symbol returns the tag-0 (source-level) symbol for label.
func (t *Table) Symbol(label string) Symbol {
	return Symbol{label: t.Intern(label), Tag: 0}
}

// Fresh returns a new symbol with the same label as s but a tag equal to
// ++counter: monotonic over the table's lifetime, never colliding with any
// symbol whose tag is <= the counter at call time (spec §4.1).
func (t *Table) Fresh(s Symbol) Symbol {
	return Symbol{label: s.label, Tag: t.counter.Add(1)}
}
