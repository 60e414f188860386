package talents

import (
  "strings"

  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type ScopeKind string

const (
  ScopeAll        ScopeKind = "all"
  ScopeDifficulty ScopeKind = "difficulty"
  ScopeKeyword    ScopeKind = "keyword"
  ScopeRoom       ScopeKind = "room"
)

// Scope narrows which chores an effect applies to. Both the odds engine and
// the scoring path go through Matches; they must never diverge on
// applicability.
type Scope struct {
  Kind   ScopeKind
  Target string
}

func (s Scope) Matches(chore types.Chore) bool {
  switch s.Kind {
  case ScopeAll:
    return true
  case ScopeDifficulty:
    return string(chore.Difficulty) == s.Target
  case ScopeKeyword:
    return strings.Contains(strings.ToLower(chore.Title), strings.ToLower(s.Target))
  case ScopeRoom:
    return string(chore.Room) == s.Target
  }
  return false
}
