// Package combat resolves the turn-based damage exchange between the player
// and a ship creature. It is a thin collaborator over the player's health:
// it only consumes TakeDamage and IsAlive.
package combat

import "github.com/forgottenship/game/internal/game/dice"

// Player damage range per round.
const (
	playerHitMin = 5
	playerHitMax = 15
)

// Enemy is a hostile creature aboard the ship.
type Enemy struct {
	// Name is the display name.
	Name string
	// Health is the remaining hit points.
	Health int
	// AttackPower caps the creature's per-round damage.
	AttackPower int
}

// The ship's creature roster.
func NewScuttler() *Enemy { return &Enemy{Name: "Scuttler", Health: 10, AttackPower: 4} }
func NewLurker() *Enemy   { return &Enemy{Name: "Lurker", Health: 25, AttackPower: 12} }
func NewStalker() *Enemy  { return &Enemy{Name: "The Stalker", Health: 60, AttackPower: 18} }

// IsAlive reports whether the enemy can still fight.
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// Fighter is the subset of player state combat consumes.
type Fighter interface {
	TakeDamage(amount int)
	IsAlive() bool
}

// Round records one exchange of blows. EnemyHit is zero when the enemy died
// before striking back.
type Round struct {
	PlayerHit int
	EnemyHit  int
}

// Result summarizes a finished encounter.
type Result struct {
	// EnemyName is the defeated or victorious creature.
	EnemyName string
	// Won is true when the enemy dropped first.
	Won bool
	// Rounds lists every exchange in order.
	Rounds []Round
}

// Fight runs the encounter to completion: each round the player strikes for
// 5–15, then the surviving enemy strikes back for 1–AttackPower.
//
// Precondition: f and enemy must be non-nil and alive; src must be non-nil.
// Postcondition: exactly one of f and enemy is alive, and Result.Won
// reflects which.
func Fight(f Fighter, enemy *Enemy, src dice.Source) Result {
	result := Result{EnemyName: enemy.Name}

	for f.IsAlive() && enemy.IsAlive() {
		round := Round{PlayerHit: dice.Between(src, playerHitMin, playerHitMax)}
		enemy.Health -= round.PlayerHit

		if enemy.IsAlive() {
			round.EnemyHit = dice.Between(src, 1, enemy.AttackPower)
			f.TakeDamage(round.EnemyHit)
		}
		result.Rounds = append(result.Rounds, round)
	}

	result.Won = enemy.Health <= 0 && f.IsAlive()
	return result
}
