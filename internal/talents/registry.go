package talents

import (
  "fmt"
  "sort"
)

type Branch string

const (
  BranchEfficiency Branch = "efficiency"
  BranchBonding    Branch = "bonding"
  BranchGrowth     Branch = "growth"
)

type Node struct {
  ID      string
  Branch  Branch
  Tier    int
  Cost    int
  Title   string
  Prereqs []string
  Effect  Effect
}

// registry is the static talent tree for this version of the app. Node IDs
// are stable across releases; removing one would orphan stored unlocks.
var registry = []Node{
  // Efficiency branch: household output.
  {ID: "eff_quick_hands", Branch: BranchEfficiency, Tier: 1, Cost: 1, Title: "Quick Hands",
    Effect: FlatBonus{Scope: Scope{Kind: ScopeDifficulty, Target: "EASY"}, Amount: 2}},
  {ID: "eff_kitchen_pro", Branch: BranchEfficiency, Tier: 1, Cost: 1, Title: "Kitchen Pro",
    Effect: FlatBonus{Scope: Scope{Kind: ScopeRoom, Target: "kitchen"}, Amount: 3}},
  {ID: "eff_dish_dodger", Branch: BranchEfficiency, Tier: 2, Cost: 2, Title: "Dish Dodger",
    Prereqs: []string{"eff_kitchen_pro"},
    Effect: OddsShift{Scope: Scope{Kind: ScopeKeyword, Target: "dish"}, Delta: -0.15}},
  {ID: "eff_bathroom_blitz", Branch: BranchEfficiency, Tier: 2, Cost: 2, Title: "Bathroom Blitz",
    Prereqs: []string{"eff_quick_hands"},
    Effect: Multiplier{Scope: Scope{Kind: ScopeRoom, Target: "bathroom"}, Factor: 1.25}},
  {ID: "eff_heavy_lifter", Branch: BranchEfficiency, Tier: 3, Cost: 3, Title: "Heavy Lifter",
    Prereqs: []string{"eff_bathroom_blitz"},
    Effect: Multiplier{Scope: Scope{Kind: ScopeDifficulty, Target: "HARD"}, Factor: 1.5}},

  // Bonding branch: couple chores and shared momentum.
  {ID: "bond_warm_start", Branch: BranchBonding, Tier: 1, Cost: 1, Title: "Warm Start",
    Effect: FirstOfDayBonus{Amount: 5}},
  {ID: "bond_together_time", Branch: BranchBonding, Tier: 1, Cost: 1, Title: "Together Time",
    Effect: FlatBonus{Scope: Scope{Kind: ScopeRoom, Target: "us"}, Amount: 4}},
  {ID: "bond_eager_partner", Branch: BranchBonding, Tier: 2, Cost: 2, Title: "Eager Partner",
    Prereqs: []string{"bond_together_time"},
    Effect: OddsShift{Scope: Scope{Kind: ScopeRoom, Target: "us"}, Delta: 0.2}},
  {ID: "bond_sunday_best", Branch: BranchBonding, Tier: 3, Cost: 3, Title: "Sunday Best",
    Prereqs: []string{"bond_eager_partner"},
    Effect: Multiplier{Scope: Scope{Kind: ScopeRoom, Target: "us"}, Factor: 1.5}},

  // Growth branch: long-game scaling.
  {ID: "grow_early_bird", Branch: BranchGrowth, Tier: 1, Cost: 1, Title: "Early Bird",
    Effect: FirstOfDayBonus{Amount: 3}},
  {ID: "grow_steady_gains", Branch: BranchGrowth, Tier: 1, Cost: 1, Title: "Steady Gains",
    Effect: FlatBonus{Scope: Scope{Kind: ScopeAll}, Amount: 1}},
  {ID: "grow_vacuum_lover", Branch: BranchGrowth, Tier: 2, Cost: 2, Title: "Vacuum Lover",
    Prereqs: []string{"grow_steady_gains"},
    Effect: OddsShift{Scope: Scope{Kind: ScopeKeyword, Target: "vacuum"}, Delta: 0.15}},
  {ID: "grow_bed_made", Branch: BranchGrowth, Tier: 2, Cost: 2, Title: "Bed, Made",
    Prereqs: []string{"grow_early_bird"},
    Effect: OddsShift{Scope: Scope{Kind: ScopeRoom, Target: "bedroom"}, Delta: 0.1}},
  {ID: "grow_compounding", Branch: BranchGrowth, Tier: 3, Cost: 3, Title: "Compounding",
    Prereqs: []string{"grow_steady_gains", "grow_vacuum_lover"},
    Effect: Multiplier{Scope: Scope{Kind: ScopeAll}, Factor: 1.1}},
}

var registryByID = func() map[string]Node {
  m := make(map[string]Node, len(registry))
  for _, n := range registry {
    m[n.ID] = n
  }
  return m
}()

func AllNodes() []Node {
  out := make([]Node, len(registry))
  copy(out, registry)
  return out
}

func NodeByID(id string) (Node, bool) {
  n, ok := registryByID[id]
  return n, ok
}

// ValidateBuild checks a requested unlock set wholesale: every node must
// exist, every prerequisite must be inside the set, and the total cost must
// fit the budget. Unknown IDs are rejected here at the boundary; stored
// historical sets are the only place they are tolerated.
func ValidateBuild(nodeIDs []string, budget int) error {
  requested := make(map[string]bool, len(nodeIDs))
  for _, id := range nodeIDs {
    requested[id] = true
  }
  totalCost := 0
  ids := make([]string, 0, len(requested))
  for id := range requested {
    ids = append(ids, id)
  }
  sort.Strings(ids)
  for _, id := range ids {
    node, ok := registryByID[id]
    if !ok {
      return fmt.Errorf("unknown talent node %q", id)
    }
    totalCost += node.Cost
    for _, pre := range node.Prereqs {
      if !requested[pre] {
        return fmt.Errorf("talent node %q requires %q", id, pre)
      }
    }
  }
  if totalCost > budget {
    return fmt.Errorf("build costs %d talent points, budget is %d", totalCost, budget)
  }
  return nil
}

// EffectsFor resolves an unlocked set into its effects. Unknown IDs in
// stored data (left over from older registry versions) are skipped.
func EffectsFor(nodeIDs []string) []Effect {
  effects := make([]Effect, 0, len(nodeIDs))
  for _, id := range nodeIDs {
    node, ok := registryByID[id]
    if !ok {
      continue
    }
    effects = append(effects, node.Effect)
  }
  return effects
}
