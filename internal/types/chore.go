package types

import (
  "time"

  "github.com/google/uuid"
)

type Room string

const (
  RoomKitchen    Room = "kitchen"
  RoomBathroom   Room = "bathroom"
  RoomLivingRoom Room = "living_room"
  RoomBedroom    Room = "bedroom"
  RoomUs         Room = "us"
)

type Difficulty string

const (
  DifficultyEasy   Difficulty = "EASY"
  DifficultyMedium Difficulty = "MEDIUM"
  DifficultyHard   Difficulty = "HARD"
)

type ChoreCategory string

const (
  CategoryHousehold ChoreCategory = "household"
  CategoryPet       ChoreCategory = "pet"
  CategoryVehicle   ChoreCategory = "vehicle"
  CategoryPersonal  ChoreCategory = "personal"
  CategoryCouple    ChoreCategory = "couple"
  CategorySpecial   ChoreCategory = "special"
)

type Chore struct {
  ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID     uuid.UUID     `gorm:"type:uuid;index;not null;column:couple_id" json:"couple_id"`
  Room         Room          `gorm:"not null;column:room" json:"room"`
  Title        string        `gorm:"not null;column:title" json:"title"`
  Description  string        `gorm:"column:description" json:"description,omitempty"`
  Difficulty   Difficulty    `gorm:"not null;column:difficulty" json:"difficulty"`
  Category     ChoreCategory `gorm:"column:category" json:"category,omitempty"`
  Points       int           `gorm:"not null;column:points" json:"points"`
  TimerMinutes int           `gorm:"column:timer_minutes" json:"timer_minutes,omitempty"`
  IsDefault    bool          `gorm:"not null;default:false;column:is_default" json:"is_default"`
  CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

func (Chore) TableName() string {
  return "chore"
}
