package scoring

import (
  "testing"

  "github.com/google/uuid"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

func TestLevelForPoints(t *testing.T) {
  cases := []struct {
    points int
    want   int
  }{
    {0, 1},
    {99, 1},
    {100, 2},
    {250, 3},
    {-5, 1},
  }
  for _, tc := range cases {
    if got := LevelForPoints(tc.points); got != tc.want {
      t.Fatalf("LevelForPoints(%d): want=%d got=%d", tc.points, tc.want, got)
    }
  }
}

func TestTalentPointBudget(t *testing.T) {
  cases := []struct {
    level int
    want  int
  }{
    {1, 0},
    {2, 0},
    {3, 1},
    {7, 3},
    {0, 0},
  }
  for _, tc := range cases {
    if got := TalentPointBudget(tc.level); got != tc.want {
      t.Fatalf("TalentPointBudget(%d): want=%d got=%d", tc.level, tc.want, got)
    }
  }
}

func TestCompletionAward(t *testing.T) {
  chore := types.Chore{
    ID:         uuid.New(),
    Room:       types.RoomKitchen,
    Title:      "Wash dishes",
    Difficulty: types.DifficultyMedium,
    Points:     DifficultyPoints[types.DifficultyMedium],
  }
  effects := []talents.Effect{
    talents.FlatBonus{Scope: talents.Scope{Kind: talents.ScopeRoom, Target: "kitchen"}, Amount: 3},
    talents.FlatBonus{Scope: talents.Scope{Kind: talents.ScopeRoom, Target: "bathroom"}, Amount: 50},
    talents.FirstOfDayBonus{Amount: 5},
    talents.Multiplier{Scope: talents.Scope{Kind: talents.ScopeAll}, Factor: 1.1},
  }

  // (20 base + 3 kitchen + 5 first-of-day) * 1.1 = 30.8, truncated.
  if got := CompletionAward(chore, effects, true); got != 30 {
    t.Fatalf("first-of-day award: want=30 got=%d", got)
  }
  // (20 + 3) * 1.1 = 25.3, truncated.
  if got := CompletionAward(chore, effects, false); got != 25 {
    t.Fatalf("repeat award: want=25 got=%d", got)
  }
}

func TestBasePointsOverride(t *testing.T) {
  chore := types.Chore{Difficulty: types.DifficultyEasy, Points: 42}
  if got := BasePoints(chore); got != 42 {
    t.Fatalf("override: want=42 got=%d", got)
  }
  chore.Points = 0
  if got := BasePoints(chore); got != DifficultyPoints[types.DifficultyEasy] {
    t.Fatalf("table lookup: want=%d got=%d", DifficultyPoints[types.DifficultyEasy], got)
  }
}
