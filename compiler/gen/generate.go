package gen

import (
	"fmt"
	"iter"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/schema"
)

// Generator runs one generation pass over an ordered version list. It owns
// the interning caches and the emission scope tree; both are discarded with
// the Generator once the pass completes. A Generator is single-use: create a
// new one per run.
type Generator struct {
	versions  []*schema.Version
	pkg       string
	root      *Scope
	columns   *columnInterner
	shapes    *shapeInterner
	snapshots map[int64]string
	consumed  bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithPackage sets the package name of the generated library.
// The default is "migrations".
func WithPackage(pkg string) Option {
	return func(g *Generator) {
		if pkg != "" {
			g.pkg = pkg
		}
	}
}

// New validates the version list and returns a Generator for it. The list
// must be non-empty and strictly sorted ascending with unique ordinals;
// violations are ErrUnsortedVersions, asserted here rather than repaired.
func New(versions []*schema.Version, opts ...Option) (*Generator, error) {
	if len(versions) == 0 {
		return nil, NewInvalidInputError("", "no schema versions")
	}
	for i := 1; i < len(versions); i++ {
		if versions[i].Version <= versions[i-1].Version {
			return nil, fmt.Errorf("%w: version %d followed by %d",
				ErrUnsortedVersions, versions[i-1].Version, versions[i].Version)
		}
	}
	g := &Generator{
		versions:  versions,
		pkg:       "migrations",
		root:      NewScope(),
		snapshots: make(map[int64]string),
	}
	g.columns = newColumnInterner(g.root)
	g.shapes = newShapeInterner(g.root)
	g.root.Reserve("MigrationSteps")
	g.root.Reserve("StepByStep")
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// adjacent yields each (previous, next) pair of the ordered version list.
// The sequence is finite and single-pass; the dispatcher generator consumes
// it exactly once.
func adjacent(versions []*schema.Version) iter.Seq2[*schema.Version, *schema.Version] {
	return func(yield func(*schema.Version, *schema.Version) bool) {
		for i := 1; i < len(versions); i++ {
			if !yield(versions[i-1], versions[i]) {
				return
			}
		}
	}
}

// Generate runs the pass and returns the generated library: one snapshot
// type per non-initial version, interleaved with the shared column factories
// and shape types introduced at first use, followed by the MigrationSteps
// and StepByStep dispatchers. Output is deterministic: the same input
// renders byte-identical source.
func (g *Generator) Generate() (*jen.File, error) {
	if g.consumed {
		return nil, NewInvalidInputError("", "generation pass already consumed")
	}
	g.consumed = true
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by sqlstep. DO NOT EDIT.")
	// The oldest version is never an upgrade target, so it needs no snapshot.
	for _, v := range g.versions[1:] {
		if err := g.emitSnapshot(v); err != nil {
			return nil, err
		}
	}
	g.emitDispatcher()
	g.root.Flatten(f)
	return f, nil
}
