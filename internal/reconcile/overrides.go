package reconcile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the hand-maintained id override table: season -> team -> raw
// name -> correct actor id. The league site sometimes publishes an actor with
// id 0, or two actors under one id; the entries here pin the correct id so
// historical imports stay reproducible.
//
// The table is configuration, not behavior: it is loaded from a versioned YAML
// file and threaded through the reconciler explicitly.
type Overrides map[int]map[string]map[string]int

// LoadOverrides reads an override table from path. A missing file yields an
// empty table, not an error, so fresh deployments work without one.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Overrides{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading override table: %w", err)
	}

	var table Overrides
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing override table %s: %w", path, err)
	}
	if table == nil {
		table = Overrides{}
	}
	return table, nil
}

// Lookup returns the overridden actor id for (season, teamID, name), if any.
func (o Overrides) Lookup(season int, teamID, name string) (int, bool) {
	teams, ok := o[season]
	if !ok {
		return 0, false
	}
	names, ok := teams[teamID]
	if !ok {
		return 0, false
	}
	id, ok := names[name]
	return id, ok
}
