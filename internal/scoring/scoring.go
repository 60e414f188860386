package scoring

import (
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

const (
  PointsPerLevel       = 100
  LevelsPerTalentPoint = 2
)

// DifficultyPoints is the fixed base-value table. A chore's Points column
// is seeded from it; a differing stored value is treated as an explicit
// override and wins.
var DifficultyPoints = map[types.Difficulty]int{
  types.DifficultyEasy:   10,
  types.DifficultyMedium: 20,
  types.DifficultyHard:   35,
}

func LevelForPoints(totalPoints int) int {
  if totalPoints < 0 {
    totalPoints = 0
  }
  return totalPoints/PointsPerLevel + 1
}

func TalentPointBudget(level int) int {
  if level < 1 {
    return 0
  }
  return (level - 1) / LevelsPerTalentPoint
}

// BasePoints returns the chore's effective base value: the stored override
// if set, the difficulty table otherwise.
func BasePoints(chore types.Chore) int {
  if chore.Points > 0 {
    return chore.Points
  }
  return DifficultyPoints[chore.Difficulty]
}

// CompletionAward computes the points for completing a chore: base value
// plus matching flat bonuses plus the first-of-day bonus, then scaled by
// matching multipliers and truncated to an integer.
func CompletionAward(chore types.Chore, effects []talents.Effect, firstOfDay bool) int {
  award := float64(BasePoints(chore))
  for _, e := range effects {
    switch eff := e.(type) {
    case talents.FlatBonus:
      if eff.Scope.Matches(chore) {
        award += float64(eff.Amount)
      }
    case talents.FirstOfDayBonus:
      if firstOfDay {
        award += float64(eff.Amount)
      }
    }
  }
  for _, e := range effects {
    if eff, ok := e.(talents.Multiplier); ok && eff.Scope.Matches(chore) {
      award *= eff.Factor
    }
  }
  return int(award)
}
