package services

import (
  "encoding/json"
  "testing"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/hearthly/hearthpoints-backend/internal/odds"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

func oddsRecordForTest(t *testing.T, table odds.Table) *types.DailyOdds {
  t.Helper()
  raw, err := json.Marshal(table)
  if err != nil {
    t.Fatalf("marshal table: %v", err)
  }
  return &types.DailyOdds{
    ID:            uuid.New(),
    CoupleID:      uuid.New(),
    Date:          "2026-09-01",
    PartnerAID:    uuid.New(),
    PartnerBID:    uuid.New(),
    Probabilities: datatypes.JSON(raw),
  }
}

func TestBuildBoardResolvesSlotsToPartnerIDs(t *testing.T) {
  table := odds.Table{
    "chore-1": {A: 0.6, B: 0.4},
    "chore-2": {A: 0.3, B: 0.7},
  }
  rec := oddsRecordForTest(t, table)
  assignment := &types.DailyAssignment{
    CoupleID: rec.CoupleID,
    Date:     rec.Date,
    Assignments: datatypes.JSONMap{
      "chore-1": "a",
      "chore-2": "b",
    },
  }

  board, err := buildBoard(rec.Date, rec, assignment, nil)
  if err != nil {
    t.Fatalf("buildBoard returned error: %v", err)
  }
  if got := board.Assignments["chore-1"]; got != rec.PartnerAID {
    t.Fatalf("chore-1 assigned to %s, want partner a %s", got, rec.PartnerAID)
  }
  if got := board.Assignments["chore-2"]; got != rec.PartnerBID {
    t.Fatalf("chore-2 assigned to %s, want partner b %s", got, rec.PartnerBID)
  }
  if len(board.Odds) != 2 {
    t.Fatalf("board has %d odds entries, want 2", len(board.Odds))
  }
  if board.Odds["chore-1"].A != 0.6 {
    t.Fatalf("chore-1 odds A = %v, want 0.6", board.Odds["chore-1"].A)
  }
}

func TestBuildBoardRejectsUnknownSlot(t *testing.T) {
  rec := oddsRecordForTest(t, odds.Table{"chore-1": {A: 0.5, B: 0.5}})
  assignment := &types.DailyAssignment{
    CoupleID:    rec.CoupleID,
    Date:        rec.Date,
    Assignments: datatypes.JSONMap{"chore-1": "c"},
  }
  if _, err := buildBoard(rec.Date, rec, assignment, nil); err == nil {
    t.Fatal("expected error for invalid slot, got nil")
  }
}

func TestBuildBoardRejectsCorruptOddsJSON(t *testing.T) {
  rec := &types.DailyOdds{
    PartnerAID:    uuid.New(),
    PartnerBID:    uuid.New(),
    Probabilities: datatypes.JSON([]byte("not-json")),
  }
  assignment := &types.DailyAssignment{Assignments: datatypes.JSONMap{}}
  if _, err := buildBoard("2026-09-01", rec, assignment, nil); err == nil {
    t.Fatal("expected error for corrupt odds JSON, got nil")
  }
}
