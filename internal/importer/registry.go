// Package importer turns bank statement exports into ledger records.
package importer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Parser converts one bank's CSV export into unvalidated ledger records.
// Owner and ID are left empty; the ledger fills them in on Add.
type Parser interface {
	Parse(r io.Reader) ([]model.Record, error)
	Format() string
}

// Registry maps format names to parsers. Names are case-insensitive.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// DefaultRegistry knows every bank format shipped with fintrack.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// Register panics if the format is already taken.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate statement format: " + key)
	}
	r.parsers[key] = p
}

// Lookup returns the parser for format. The error names the formats that
// are available.
func (r *Registry) Lookup(format string) (Parser, error) {
	p, ok := r.parsers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown statement format %q (available: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ReadStatement parses the statement file at path with p.
func ReadStatement(p Parser, path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	recs, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", p.Format(), err)
	}
	return recs, nil
}
