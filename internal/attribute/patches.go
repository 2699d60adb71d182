package attribute

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EventPatch is one hand-curated correction for a known-bad source event.
// Patches are matched by game and event id after attribution; zero-valued
// replacement fields leave the event untouched.
type EventPatch struct {
	GameID  int    `yaml:"game"`
	EventID int    `yaml:"event"`
	Drop    bool   `yaml:"drop,omitempty"`
	Legend  string `yaml:"legend,omitempty"`
	ActorID int    `yaml:"actor,omitempty"`
	TeamID  string `yaml:"team,omitempty"`
	Extra   string `yaml:"extra,omitempty"`
	Score   string `yaml:"score,omitempty"`
}

// PatchList holds the corrections loaded from the data file, indexed by game.
type PatchList struct {
	byGame map[int][]EventPatch
}

// LoadPatches reads the YAML patch file. A missing file yields an empty list
// so fresh deployments work without one.
func LoadPatches(path string) (*PatchList, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &PatchList{byGame: map[int][]EventPatch{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading patch file %s: %w", path, err)
	}

	var patches []EventPatch
	if err := yaml.Unmarshal(data, &patches); err != nil {
		return nil, fmt.Errorf("parsing patch file %s: %w", path, err)
	}

	list := &PatchList{byGame: make(map[int][]EventPatch)}
	for _, p := range patches {
		list.byGame[p.GameID] = append(list.byGame[p.GameID], p)
	}
	return list, nil
}

// Apply rewrites the attributed events of one game according to the loaded
// patches. Dropped events are removed and the remaining ids stay untouched so
// patched output is reproducible across runs.
func (l *PatchList) Apply(gameID int, events []AttributedEvent) []AttributedEvent {
	patches := l.byGame[gameID]
	if len(patches) == 0 {
		return events
	}

	drop := make(map[int]bool)
	replace := make(map[int]EventPatch)
	for _, p := range patches {
		if p.Drop {
			drop[p.EventID] = true
		} else {
			replace[p.EventID] = p
		}
	}

	out := events[:0]
	for _, ev := range events {
		if drop[ev.EventID] {
			continue
		}
		if p, ok := replace[ev.EventID]; ok {
			if p.Legend != "" {
				ev.Legend = p.Legend
			}
			if p.ActorID != 0 {
				ev.ActorID = p.ActorID
			}
			if p.TeamID != "" {
				ev.TeamID = p.TeamID
			}
			if p.Extra != "" {
				ev.ExtraInfo = p.Extra
			}
			if p.Score != "" {
				if h, w, err := parseScore(p.Score); err == nil {
					ev.HomeScore, ev.AwayScore = h, w
				}
			}
		}
		out = append(out, ev)
	}
	return out
}
