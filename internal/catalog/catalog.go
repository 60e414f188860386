package catalog

import (
  _ "embed"
  "fmt"

  "gopkg.in/yaml.v3"

  "github.com/hearthly/hearthpoints-backend/internal/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type DefaultChore struct {
  Title        string `yaml:"title"`
  Difficulty   string `yaml:"difficulty"`
  TimerMinutes int    `yaml:"timer_minutes"`
}

type defaultsFile struct {
  Rooms map[string][]DefaultChore `yaml:"rooms"`
}

var validDifficulties = map[string]bool{
  string(types.DifficultyEasy):   true,
  string(types.DifficultyMedium): true,
  string(types.DifficultyHard):   true,
}

// Load parses the embedded default chore catalog. Every new couple is
// provisioned from this list.
func Load() (map[types.Room][]DefaultChore, error) {
  var parsed defaultsFile
  if err := yaml.Unmarshal(defaultsYAML, &parsed); err != nil {
    return nil, fmt.Errorf("parse default catalog: %w", err)
  }
  if len(parsed.Rooms) == 0 {
    return nil, fmt.Errorf("default catalog has no rooms")
  }
  out := make(map[types.Room][]DefaultChore, len(parsed.Rooms))
  for room, chores := range parsed.Rooms {
    for _, chore := range chores {
      if chore.Title == "" {
        return nil, fmt.Errorf("default catalog: untitled chore in room %q", room)
      }
      if !validDifficulties[chore.Difficulty] {
        return nil, fmt.Errorf("default catalog: chore %q has invalid difficulty %q", chore.Title, chore.Difficulty)
      }
    }
    out[types.Room(room)] = chores
  }
  return out, nil
}
