package talents

import (
  "strings"
  "testing"

  "github.com/google/uuid"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

func testChore() types.Chore {
  return types.Chore{
    ID:         uuid.New(),
    Room:       types.RoomKitchen,
    Title:      "Wash dishes",
    Difficulty: types.DifficultyMedium,
  }
}

func TestScopeMatching(t *testing.T) {
  chore := testChore()
  cases := []struct {
    name  string
    scope Scope
    want  bool
  }{
    {"all", Scope{Kind: ScopeAll}, true},
    {"difficulty match", Scope{Kind: ScopeDifficulty, Target: "MEDIUM"}, true},
    {"difficulty miss", Scope{Kind: ScopeDifficulty, Target: "HARD"}, false},
    {"keyword match", Scope{Kind: ScopeKeyword, Target: "dish"}, true},
    {"keyword case-insensitive", Scope{Kind: ScopeKeyword, Target: "DISH"}, true},
    {"keyword miss", Scope{Kind: ScopeKeyword, Target: "vacuum"}, false},
    {"room match", Scope{Kind: ScopeRoom, Target: "kitchen"}, true},
    {"room miss", Scope{Kind: ScopeRoom, Target: "bathroom"}, false},
  }
  for _, tc := range cases {
    if got := tc.scope.Matches(chore); got != tc.want {
      t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
    }
  }
}

func TestValidateBuildRejectsUnknownNode(t *testing.T) {
  err := ValidateBuild([]string{"grow_steady_gains", "not_a_node"}, 10)
  if err == nil || !strings.Contains(err.Error(), "unknown talent node") {
    t.Fatalf("want unknown-node error, got %v", err)
  }
}

func TestValidateBuildEnforcesPrereqs(t *testing.T) {
  if err := ValidateBuild([]string{"eff_dish_dodger"}, 10); err == nil {
    t.Fatalf("dish dodger without kitchen pro should fail")
  }
  if err := ValidateBuild([]string{"eff_kitchen_pro", "eff_dish_dodger"}, 10); err != nil {
    t.Fatalf("valid prereq chain rejected: %v", err)
  }
}

func TestValidateBuildEnforcesBudget(t *testing.T) {
  build := []string{"eff_kitchen_pro", "eff_dish_dodger"} // cost 1 + 2
  if err := ValidateBuild(build, 2); err == nil {
    t.Fatalf("build over budget should fail")
  }
  if err := ValidateBuild(build, 3); err != nil {
    t.Fatalf("build within budget rejected: %v", err)
  }
}

func TestEffectsForSkipsUnknownStoredIDs(t *testing.T) {
  effects := EffectsFor([]string{"grow_steady_gains", "removed_in_v2"})
  if len(effects) != 1 {
    t.Fatalf("want 1 effect, got %d", len(effects))
  }
}

func TestRegistryPrereqsExist(t *testing.T) {
  for _, node := range AllNodes() {
    for _, pre := range node.Prereqs {
      if _, ok := NodeByID(pre); !ok {
        t.Fatalf("node %s lists missing prerequisite %s", node.ID, pre)
      }
    }
  }
}
