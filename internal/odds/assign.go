package odds

import (
  "math/rand"
)

// PartnerSlot names one side of the probability pair. The caller maps slots
// back to user IDs via the stored partner order on the odds record.
type PartnerSlot string

const (
  SlotA PartnerSlot = "a"
  SlotB PartnerSlot = "b"
)

// Assignments maps chore ID to the partner slot it landed on.
type Assignments map[string]PartnerSlot

// GenerateAssignments samples one concrete assignment per chore from the
// odds table. The generator is seeded from coupleID and date together, so
// repeated calls with the same inputs reproduce the same assignment while
// distinct couples draw from distinct streams. An empty table yields an
// empty map.
func GenerateAssignments(coupleID, date string, table Table) Assignments {
  assignments := make(Assignments, len(table))
  rng := rand.New(rand.NewSource(seedFromString(coupleID + "|" + date)))

  for _, id := range sortedIDs(table) {
    if rng.Float64() < table[id].A {
      assignments[id] = SlotA
    } else {
      assignments[id] = SlotB
    }
  }
  return assignments
}
