package odds

import (
  "fmt"
  "math"
  "reflect"
  "testing"

  "github.com/google/uuid"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

const epsilon = 1e-9

func makeChore(room types.Room, title string, difficulty types.Difficulty) types.Chore {
  return types.Chore{
    ID:         uuid.New(),
    Room:       room,
    Title:      title,
    Difficulty: difficulty,
  }
}

func sampleCatalog() []types.Chore {
  return []types.Chore{
    makeChore(types.RoomKitchen, "Wash dishes", types.DifficultyMedium),
    makeChore(types.RoomKitchen, "Wipe counters", types.DifficultyEasy),
    makeChore(types.RoomKitchen, "Take out trash", types.DifficultyEasy),
    makeChore(types.RoomBathroom, "Clean toilet", types.DifficultyHard),
    makeChore(types.RoomBathroom, "Mop floor", types.DifficultyMedium),
    makeChore(types.RoomBedroom, "Make bed", types.DifficultyEasy),
    makeChore(types.RoomUs, "Give massage", types.DifficultyEasy),
  }
}

func checkInvariants(t *testing.T, pass string, table Table) {
  t.Helper()
  for id, pair := range table {
    if math.Abs(pair.A+pair.B-1.0) > epsilon {
      t.Fatalf("%s: pair for %s sums to %f, want 1.0", pass, id, pair.A+pair.B)
    }
    if pair.A < ProbFloor-epsilon || pair.A > ProbCeil+epsilon {
      t.Fatalf("%s: probability A for %s is %f, outside [%f, %f]", pass, id, pair.A, ProbFloor, ProbCeil)
    }
    if pair.B < ProbFloor-epsilon || pair.B > ProbCeil+epsilon {
      t.Fatalf("%s: probability B for %s is %f, outside [%f, %f]", pass, id, pair.B, ProbFloor, ProbCeil)
    }
  }
}

func TestInvariantsHoldAfterEveryPass(t *testing.T) {
  catalog := sampleCatalog()
  effectsA := []talents.Effect{
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeRoom, Target: "kitchen"}, Delta: 0.9},
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeKeyword, Target: "toilet"}, Delta: -0.7},
  }
  effectsB := []talents.Effect{
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeAll}, Delta: 0.05},
  }

  table := initBaseline(catalog)
  checkInvariants(t, "baseline", table)
  for _, pair := range table {
    if pair.A != 0.5 || pair.B != 0.5 {
      t.Fatalf("baseline pair is %+v, want (0.5, 0.5)", pair)
    }
  }

  table = applyTalentShifts(table, catalog, effectsA, effectsB)
  checkInvariants(t, "talent shifts", table)

  table = rebalanceRooms(table, catalog)
  checkInvariants(t, "room rebalance", table)

  table = applyDailyJitter(table, "2024-01-01")
  checkInvariants(t, "jitter", table)
}

func TestKeywordShiftScenario(t *testing.T) {
  chore := makeChore(types.RoomKitchen, "Wash dishes", types.DifficultyMedium)
  catalog := []types.Chore{chore}
  effectsA := []talents.Effect{
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeKeyword, Target: "dish"}, Delta: -0.2},
  }

  table := applyTalentShifts(initBaseline(catalog), catalog, effectsA, nil)
  pair := table[chore.ID.String()]
  if math.Abs(pair.A-0.3) > epsilon {
    t.Fatalf("partner A probability: want=0.3 got=%f", pair.A)
  }
  if math.Abs(pair.B-0.7) > epsilon {
    t.Fatalf("partner B probability: want=0.7 got=%f", pair.B)
  }
}

func TestShiftsClampToBounds(t *testing.T) {
  chore := makeChore(types.RoomKitchen, "Wash dishes", types.DifficultyMedium)
  catalog := []types.Chore{chore}

  up := []talents.Effect{talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeAll}, Delta: 2.0}}
  table := applyTalentShifts(initBaseline(catalog), catalog, up, nil)
  if pair := table[chore.ID.String()]; pair.A != ProbCeil || math.Abs(pair.B-(1-ProbCeil)) > epsilon {
    t.Fatalf("ceiling clamp: got %+v", pair)
  }

  down := []talents.Effect{talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeAll}, Delta: -2.0}}
  table = applyTalentShifts(initBaseline(catalog), catalog, down, nil)
  if pair := table[chore.ID.String()]; pair.A != ProbFloor || math.Abs(pair.B-(1-ProbFloor)) > epsilon {
    t.Fatalf("floor clamp: got %+v", pair)
  }
}

func TestSymmetricReconciliation(t *testing.T) {
  chore := makeChore(types.RoomKitchen, "Wash dishes", types.DifficultyMedium)
  catalog := []types.Chore{chore}

  // Both partners pull toward themselves by the same amount; the net must
  // cancel out.
  pull := talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeAll}, Delta: 0.2}
  table := applyTalentShifts(initBaseline(catalog), catalog, []talents.Effect{pull}, []talents.Effect{pull})
  if pair := table[chore.ID.String()]; math.Abs(pair.A-0.5) > epsilon {
    t.Fatalf("opposing equal shifts should cancel, got %+v", pair)
  }
}

func TestRoomRebalanceCapsDominantPartner(t *testing.T) {
  catalog := []types.Chore{
    makeChore(types.RoomKitchen, "Wash dishes", types.DifficultyMedium),
    makeChore(types.RoomKitchen, "Wipe counters", types.DifficultyEasy),
    makeChore(types.RoomKitchen, "Take out trash", types.DifficultyEasy),
  }
  effectsA := []talents.Effect{
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeRoom, Target: "kitchen"}, Delta: 0.4},
  }

  table := applyTalentShifts(initBaseline(catalog), catalog, effectsA, nil)
  table = rebalanceRooms(table, catalog)

  var sumA float64
  for _, chore := range catalog {
    sumA += table[chore.ID.String()].A
  }
  limit := RoomShareLimit * float64(len(catalog))
  if sumA > limit+epsilon {
    t.Fatalf("room share after rebalance: want<=%f got=%f", limit, sumA)
  }
  checkInvariants(t, "after rebalance", table)
}

func TestRoomRebalanceNoOpWithoutSkew(t *testing.T) {
  catalog := sampleCatalog()
  table := initBaseline(catalog)
  rebalanced := rebalanceRooms(table, catalog)
  if !reflect.DeepEqual(table, rebalanced) {
    t.Fatalf("rebalance changed a balanced table")
  }
}

func TestSingleChoreRoomNeverRebalanced(t *testing.T) {
  chore := makeChore(types.RoomBathroom, "Clean toilet", types.DifficultyHard)
  catalog := []types.Chore{chore}
  effectsA := []talents.Effect{
    talents.OddsShift{Scope: talents.Scope{Kind: talents.ScopeAll}, Delta: 0.4},
  }

  table := applyTalentShifts(initBaseline(catalog), catalog, effectsA, nil)
  before := table[chore.ID.String()]
  table = rebalanceRooms(table, catalog)
  if after := table[chore.ID.String()]; after != before {
    t.Fatalf("single-chore room was rebalanced: before=%+v after=%+v", before, after)
  }
}

func TestComputeDailyOddsDeterministic(t *testing.T) {
  catalog := sampleCatalog()
  effectsA := talents.EffectsFor([]string{"eff_dish_dodger", "bond_eager_partner"})
  effectsB := talents.EffectsFor([]string{"grow_bed_made"})

  first := ComputeDailyOdds("2024-01-01", catalog, effectsA, effectsB)
  second := ComputeDailyOdds("2024-01-01", catalog, effectsA, effectsB)
  if !reflect.DeepEqual(first, second) {
    t.Fatalf("same inputs produced different odds tables")
  }

  assignFirst := GenerateAssignments("couple-1", "2024-01-01", first)
  assignSecond := GenerateAssignments("couple-1", "2024-01-01", second)
  if !reflect.DeepEqual(assignFirst, assignSecond) {
    t.Fatalf("same inputs produced different assignments")
  }
}

func TestJitterSeedIsDateOnly(t *testing.T) {
  // Two couples sharing a catalog see identical jitter decisions for the
  // same date; only assignment sampling is couple-scoped.
  catalog := sampleCatalog()
  coupleOne := ComputeDailyOdds("2024-01-01", catalog, nil, nil)
  coupleTwo := ComputeDailyOdds("2024-01-01", catalog, nil, nil)
  if !reflect.DeepEqual(coupleOne, coupleTwo) {
    t.Fatalf("jitter differed across couples for the same date")
  }
}

func TestJitterVariesAcrossDates(t *testing.T) {
  catalog := make([]types.Chore, 0, 40)
  for i := 0; i < 40; i++ {
    catalog = append(catalog, makeChore(types.RoomKitchen, fmt.Sprintf("Chore %02d", i), types.DifficultyEasy))
  }
  monday := ComputeDailyOdds("2024-01-01", catalog, nil, nil)
  tuesday := ComputeDailyOdds("2024-01-02", catalog, nil, nil)
  if reflect.DeepEqual(monday, tuesday) {
    t.Fatalf("40-chore table identical across dates; jitter not applied")
  }
}

func TestEmptyCatalog(t *testing.T) {
  table := ComputeDailyOdds("2024-01-01", nil, nil, nil)
  if len(table) != 0 {
    t.Fatalf("empty catalog: want empty table, got %d entries", len(table))
  }
  assignments := GenerateAssignments("couple-1", "2024-01-01", table)
  if len(assignments) != 0 {
    t.Fatalf("empty table: want empty assignments, got %d entries", len(assignments))
  }
}

func TestAssignmentsCoverCatalogExactly(t *testing.T) {
  catalog := sampleCatalog()
  table := ComputeDailyOdds("2024-01-01", catalog, nil, nil)
  assignments := GenerateAssignments("couple-1", "2024-01-01", table)

  if len(assignments) != len(catalog) {
    t.Fatalf("assignment count: want=%d got=%d", len(catalog), len(assignments))
  }
  for _, chore := range catalog {
    slot, ok := assignments[chore.ID.String()]
    if !ok {
      t.Fatalf("chore %s missing from assignments", chore.ID)
    }
    if slot != SlotA && slot != SlotB {
      t.Fatalf("chore %s has invalid slot %q", chore.ID, slot)
    }
  }
}

func TestDistinctCouplesGetDistinctStreams(t *testing.T) {
  catalog := make([]types.Chore, 0, 40)
  for i := 0; i < 40; i++ {
    catalog = append(catalog, makeChore(types.RoomKitchen, fmt.Sprintf("Chore %02d", i), types.DifficultyEasy))
  }
  table := ComputeDailyOdds("2024-01-01", catalog, nil, nil)
  one := GenerateAssignments("couple-1", "2024-01-01", table)
  two := GenerateAssignments("couple-2", "2024-01-01", table)
  if reflect.DeepEqual(one, two) {
    t.Fatalf("two couples drew identical 40-chore assignments; sampling seed not couple-scoped")
  }
}
