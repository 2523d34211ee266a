// Package intern provides a small, comparable handle for deduplicated byte
// sequences. Identifier-like AST payloads carry Handles instead of owned
// byte copies; string literal payloads are not interned and keep their
// decoded bytes.
package intern

import "sync"

// Handle is a cheap, comparable, hashable reference to an interned byte
// sequence. The zero Handle never refers to a live entry and is used to
// mean "absent" (e.g. a Path with no namespace).
type Handle struct {
	id int
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.id == 0
}

// Interner deduplicates byte sequences into Handles. The zero value is not
// usable; construct one with New. Intern and Lookup serialize on an internal
// mutex, so an Interner may be shared between goroutines (the common case is
// still one Interner per parse).
type Interner struct {
	mu      sync.Mutex
	table   map[string]Handle
	strings []string // index 0 unused, so Handle{} (zero value) means "absent"
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{
		table:   make(map[string]Handle),
		strings: []string{""},
	}
}

// Intern returns the Handle for b, creating a new entry if b has not been
// seen before. The returned Handle is stable for the lifetime of the
// Interner.
func (in *Interner) Intern(b []byte) Handle {
	in.mu.Lock()
	defer in.mu.Unlock()

	s := string(b)
	if h, ok := in.table[s]; ok {
		return h
	}

	h := Handle{id: len(in.strings)}
	in.strings = append(in.strings, s)
	in.table[s] = h
	return h
}

// InternString is a convenience wrapper around Intern for a Go string.
func (in *Interner) InternString(s string) Handle {
	return in.Intern([]byte(s))
}

// Lookup returns the byte sequence that h refers to. It panics if h was not
// produced by this Interner; a zero Handle returns the empty string.
func (in *Interner) Lookup(h Handle) string {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.strings[h.id]
}
