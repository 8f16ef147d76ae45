package emissions

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed factors.yaml
var embeddedTable []byte

//nolint:gochecknoglobals // Process-wide read-only registry, built once on first use.
var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// tableDocument is the YAML layout of a factor table.
type tableDocument struct {
	Factors  []EmissionFactor   `yaml:"factors"`
	Portions map[string]Portion `yaml:"portions"`
}

// Default returns the registry built from the table embedded in the binary.
// It panics if the embedded table is malformed; the table is covered by tests.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(bytes.NewReader(embeddedTable))
		if err != nil {
			panic(fmt.Sprintf("embedded emission factor table: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Load reads a YAML factor table and builds a validated Registry.
func Load(r io.Reader) (*Registry, error) {
	var doc tableDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("decoding factor table: %w", err)
	}
	return New(doc.Factors, doc.Portions)
}

// LoadFile reads a YAML factor table from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening factor table %s: %w", path, err)
	}
	defer f.Close()

	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading factor table %s: %w", path, err)
	}
	return reg, nil
}

// validateFactors checks every row and rejects duplicate names per category.
func validateFactors(factors []EmissionFactor) error {
	if len(factors) == 0 {
		return ErrEmptyTable
	}

	seen := make(map[Category]map[string]bool, len(Categories))
	for i, f := range factors {
		switch {
		case f.Name == "":
			return fmt.Errorf("%w: row %d has no name", ErrInvalidFactor, i)
		case !f.Category.IsKnown():
			return fmt.Errorf("%w: %q on factor %q", ErrUnknownCategory, f.Category, f.Name)
		case f.Unit == "":
			return fmt.Errorf("%w: factor %q has no unit", ErrInvalidFactor, f.Name)
		case math.IsNaN(f.Value) || math.IsInf(f.Value, 0) || f.Value < 0:
			return fmt.Errorf("%w: factor %q has value %v", ErrInvalidFactor, f.Name, f.Value)
		}

		if seen[f.Category] == nil {
			seen[f.Category] = make(map[string]bool)
		}
		if seen[f.Category][f.Name] {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateFactor, f.Category, f.Name)
		}
		seen[f.Category][f.Name] = true
	}
	return nil
}
