package talents

// Effect is the closed set of things a talent node can do. Each concrete
// type carries only the fields it needs; application sites switch
// exhaustively on the concrete type.
type Effect interface {
  isEffect()
}

// OddsShift moves the owner's assignment probability for matching chores by
// Delta (signed; negative means less likely to be assigned).
type OddsShift struct {
  Scope Scope
  Delta float64
}

func (OddsShift) isEffect() {}

// FlatBonus adds Amount points on completion of matching chores.
type FlatBonus struct {
  Scope  Scope
  Amount int
}

func (FlatBonus) isEffect() {}

// Multiplier scales the completion award for matching chores.
type Multiplier struct {
  Scope  Scope
  Factor float64
}

func (Multiplier) isEffect() {}

// FirstOfDayBonus adds Amount points to the first completion of the day,
// regardless of chore.
type FirstOfDayBonus struct {
  Amount int
}

func (FirstOfDayBonus) isEffect() {}
