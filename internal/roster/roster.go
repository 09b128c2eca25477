// Package roster loads the boat roster of a race and builds its two
// NameIDTable variants.
package roster

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

//go:embed vendee2020.yaml
var defaultRoster []byte

// Boat is one roster line.
type Boat struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	ASCII string `yaml:"ascii"`
}

// File is the on-disk roster format.
type File struct {
	Race    string `yaml:"race"`
	Version int    `yaml:"version"`
	Boats   []Boat `yaml:"boats"`
}

// Roster holds both table variants for the same set of ids.
type Roster struct {
	Race    string
	Version int
	// Source maps exact published names to ids.
	Source *domain.NameIDTable
	// ASCII maps plain-ASCII aliases to the same ids.
	ASCII *domain.NameIDTable
}

// Default returns the embedded Vendée Globe 2020 roster.
func Default() (*Roster, error) {
	return Parse(defaultRoster)
}

// Load reads a roster file, or the embedded default when path is empty.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes a roster document and validates that both variants are
// invertible, cover the same ids, and that aliases are plain ASCII.
func Parse(data []byte) (*Roster, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(f.Boats) == 0 {
		return nil, errors.New("parse roster: no boats")
	}

	source := make([]domain.NameID, 0, len(f.Boats))
	ascii := make([]domain.NameID, 0, len(f.Boats))
	for _, b := range f.Boats {
		alias := b.ASCII
		if alias == "" {
			alias = b.Name
		}
		if !isASCII(alias) {
			return nil, fmt.Errorf("parse roster: boat %d alias %q is not ASCII", b.ID, alias)
		}
		source = append(source, domain.NameID{Name: b.Name, ID: b.ID})
		ascii = append(ascii, domain.NameID{Name: alias, ID: b.ID})
	}

	sourceTable, err := domain.NewNameIDTable(source)
	if err != nil {
		return nil, fmt.Errorf("parse roster source names: %w", err)
	}
	asciiTable, err := domain.NewNameIDTable(ascii)
	if err != nil {
		return nil, fmt.Errorf("parse roster ascii names: %w", err)
	}

	return &Roster{
		Race:    f.Race,
		Version: f.Version,
		Source:  sourceTable,
		ASCII:   asciiTable,
	}, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7e || s[i] < 0x20 {
			return false
		}
	}
	return true
}
