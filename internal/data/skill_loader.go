package data

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var builtinSkillsYAML []byte

type skillFile struct {
	Skills []SkillDefinition `yaml:"skills"`
}

// LoadSkills decodes and validates a skill table.
// Unknown fields and duplicate IDs are rejected.
func LoadSkills(r io.Reader) ([]SkillDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f skillFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding skill table: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Skills))
	for i := range f.Skills {
		def := &f.Skills[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDefinition, def.ID)
		}
		seen[def.ID] = struct{}{}
	}

	return f.Skills, nil
}

// LoadSkillsFile loads a skill table from path.
func LoadSkillsFile(path string) ([]SkillDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening skill table %s: %w", path, err)
	}
	defer f.Close()

	defs, err := LoadSkills(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("loaded skill table", "path", path, "count", len(defs))
	return defs, nil
}

// BuiltinSkills returns the embedded skill table.
// The embedded file is validated by tests, so an error here is a build defect.
func BuiltinSkills() ([]SkillDefinition, error) {
	return LoadSkills(bytes.NewReader(builtinSkillsYAML))
}
