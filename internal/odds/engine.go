package odds

import (
  "hash/fnv"
  "math/rand"
  "sort"

  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// Pair is the probability each partner is assigned a chore. A and B always
// sum to 1.0 and each lies inside [ProbFloor, ProbCeil], so no chore is
// ever a foregone conclusion.
type Pair struct {
  A float64 `json:"a"`
  B float64 `json:"b"`
}

// Table maps chore ID to its probability pair.
type Table map[string]Pair

const (
  ProbFloor = 0.1
  ProbCeil  = 0.9

  // A partner's probability mass across one room's chores may not exceed
  // this share of the room's chore count.
  RoomShareLimit = 0.7

  jitterChance = 0.2
  jitterMin    = 0.01
  jitterMax    = 0.03
)

// ComputeDailyOdds builds the probability table for one couple and one
// calendar day. The date is the literal YYYY-MM-DD string used for the
// jitter seed; callers must pass the same string they persist. Each pass
// takes and returns an immutable snapshot so the pair-sum and clamp
// invariants can be checked between passes.
//
// The jitter seed is derived from the date alone, so two couples with
// identical catalogs see correlated jitter on the same day. Assignment
// sampling is seeded per couple, which keeps the actual outcomes distinct.
func ComputeDailyOdds(date string, catalog []types.Chore, effectsA, effectsB []talents.Effect) Table {
  table := initBaseline(catalog)
  table = applyTalentShifts(table, catalog, effectsA, effectsB)
  table = rebalanceRooms(table, catalog)
  table = applyDailyJitter(table, date)
  return table
}

func initBaseline(catalog []types.Chore) Table {
  table := make(Table, len(catalog))
  for _, chore := range catalog {
    table[chore.ID.String()] = Pair{A: 0.5, B: 0.5}
  }
  return table
}

// applyTalentShifts resolves both partners' odds-shift effects into a single
// net delta per chore: partner A's matching shifts minus partner B's. The
// net is applied to A's side and B takes the complement, so a pull by either
// partner moves the pair symmetrically.
func applyTalentShifts(table Table, catalog []types.Chore, effectsA, effectsB []talents.Effect) Table {
  next := make(Table, len(table))
  for _, chore := range catalog {
    id := chore.ID.String()
    pair, ok := table[id]
    if !ok {
      continue
    }
    net := sumShifts(effectsA, chore) - sumShifts(effectsB, chore)
    pa := clamp(pair.A + net)
    next[id] = Pair{A: pa, B: 1 - pa}
  }
  return next
}

func sumShifts(effects []talents.Effect, chore types.Chore) float64 {
  total := 0.0
  for _, e := range effects {
    shift, ok := e.(talents.OddsShift)
    if !ok {
      continue
    }
    if shift.Scope.Matches(chore) {
      total += shift.Delta
    }
  }
  return total
}

// rebalanceRooms enforces the soft fairness rule: within any room holding
// two or more chores, neither partner's summed probability may exceed
// RoomShareLimit of the room's chore count. The excess is spread evenly
// across the room's chores and taken back from the dominant side.
// Single-chore rooms are left alone.
func rebalanceRooms(table Table, catalog []types.Chore) Table {
  next := make(Table, len(table))
  for id, pair := range table {
    next[id] = pair
  }

  byRoom := make(map[types.Room][]string)
  for _, chore := range catalog {
    id := chore.ID.String()
    if _, ok := next[id]; !ok {
      continue
    }
    byRoom[chore.Room] = append(byRoom[chore.Room], id)
  }

  rooms := make([]types.Room, 0, len(byRoom))
  for room := range byRoom {
    rooms = append(rooms, room)
  }
  sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })

  for _, room := range rooms {
    ids := byRoom[room]
    if len(ids) < 2 {
      continue
    }
    sort.Strings(ids)
    n := float64(len(ids))
    limit := RoomShareLimit * n

    var sumA, sumB float64
    for _, id := range ids {
      sumA += next[id].A
      sumB += next[id].B
    }

    switch {
    case sumA > limit:
      perChore := (sumA - limit) / n
      for _, id := range ids {
        pa := next[id].A - perChore
        if pa < ProbFloor {
          pa = ProbFloor
        }
        next[id] = Pair{A: pa, B: 1 - pa}
      }
    case sumB > limit:
      perChore := (sumB - limit) / n
      for _, id := range ids {
        pb := next[id].B - perChore
        if pb < ProbFloor {
          pb = ProbFloor
        }
        next[id] = Pair{A: 1 - pb, B: pb}
      }
    }
  }
  return next
}

// applyDailyJitter perturbs a random subset of chores so odds drift a
// little from day to day even when nothing else changes. The generator is
// seeded from the literal date string and chores are visited in sorted ID
// order, so the pass is reproducible for a given day.
func applyDailyJitter(table Table, date string) Table {
  next := make(Table, len(table))
  rng := rand.New(rand.NewSource(seedFromString(date)))

  for _, id := range sortedIDs(table) {
    pair := table[id]
    if rng.Float64() < jitterChance {
      magnitude := jitterMin + rng.Float64()*(jitterMax-jitterMin)
      if rng.Intn(2) == 0 {
        pa := clamp(pair.A + magnitude)
        pair = Pair{A: pa, B: 1 - pa}
      } else {
        pb := clamp(pair.B + magnitude)
        pair = Pair{A: 1 - pb, B: pb}
      }
    }
    next[id] = pair
  }
  return next
}

func sortedIDs(table Table) []string {
  ids := make([]string, 0, len(table))
  for id := range table {
    ids = append(ids, id)
  }
  sort.Strings(ids)
  return ids
}

func clamp(p float64) float64 {
  if p < ProbFloor {
    return ProbFloor
  }
  if p > ProbCeil {
    return ProbCeil
  }
  return p
}

func seedFromString(s string) int64 {
  h := fnv.New64a()
  _, _ = h.Write([]byte(s))
  return int64(h.Sum64())
}
