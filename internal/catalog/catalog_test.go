package catalog

import (
  "testing"

  "github.com/hearthly/hearthpoints-backend/internal/types"
)

func TestLoadDefaultCatalog(t *testing.T) {
  defaults, err := Load()
  if err != nil {
    t.Fatalf("Load: %v", err)
  }
  for _, room := range []types.Room{types.RoomKitchen, types.RoomBathroom, types.RoomLivingRoom, types.RoomBedroom, types.RoomUs} {
    if len(defaults[room]) == 0 {
      t.Fatalf("room %s has no default chores", room)
    }
  }
  for _, chore := range defaults[types.RoomUs] {
    if chore.TimerMinutes <= 0 {
      t.Fatalf("couple chore %q should carry a timer", chore.Title)
    }
  }
}
