package gen

import (
	"strconv"

	"github.com/dave/jennifer/jen"
)

// Scope is one node of the emission tree: an ordered buffer of top-level
// declarations plus a name table. Child scopes resolve names against their
// ancestors, so an identifier reserved at the root is never reallocated in a
// snapshot's own namespace. One root scope is owned by a single generation
// pass and flattened into the output file at the end.
type Scope struct {
	parent *Scope
	names  map[string]struct{}
	items  []scopeItem
}

// scopeItem is either a code buffer entry or an attached child scope.
type scopeItem struct {
	code  jen.Code
	child *Scope
}

// NewScope returns an empty root scope.
func NewScope() *Scope {
	return &Scope{names: make(map[string]struct{})}
}

// Child creates a scope that resolves names against s. The child is not yet
// part of the emission order; Attach places it.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, names: make(map[string]struct{})}
}

// Attach appends a child scope's buffer at the current position of s.
func (s *Scope) Attach(child *Scope) {
	s.items = append(s.items, scopeItem{child: child})
}

// taken reports whether name is reserved in s or any ancestor.
func (s *Scope) taken(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.names[name]; ok {
			return true
		}
	}
	return false
}

// Reserve claims name in s. It returns false when the name is already held
// by s or an ancestor.
func (s *Scope) Reserve(name string) bool {
	if s.taken(name) {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Unique returns a conflict-free identifier derived from base: base itself
// when available, otherwise base with the lowest free numeric suffix. The
// returned name is reserved in s.
func (s *Scope) Unique(base string) string {
	if s.Reserve(base) {
		return base
	}
	for n := 2; ; n++ {
		name := base + strconv.Itoa(n)
		if s.Reserve(name) {
			return name
		}
	}
}

// Append buffers top-level declarations at the current position of s.
func (s *Scope) Append(code ...jen.Code) {
	for _, c := range code {
		s.items = append(s.items, scopeItem{code: c})
	}
}

// Flatten writes the scope tree into f, depth-first, in append order.
func (s *Scope) Flatten(f *jen.File) {
	for _, it := range s.items {
		if it.child != nil {
			it.child.Flatten(f)
			continue
		}
		f.Add(it.code)
		f.Line()
	}
}
