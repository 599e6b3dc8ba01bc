package ai

import "github.com/chewxy/math32"

// Status tracks an enemy's health.
type Status struct {
	health    float32
	maxHealth float32
}

func NewStatus(maxHealth float32) *Status {
	return &Status{health: maxHealth, maxHealth: maxHealth}
}

// TakeDamage subtracts damage from the current health and reports whether the enemy is now dead.
// Non-positive or non-finite damage is ignored.
func (s *Status) TakeDamage(damage float32) bool {
	if damage > 0 && !math32.IsInf(damage, 0) {
		s.health -= damage
	}
	return s.Dead()
}

func (s *Status) Health() float32 {
	return s.health
}

func (s *Status) MaxHealth() float32 {
	return s.maxHealth
}

// Fraction returns the current health as a fraction of the maximum.
func (s *Status) Fraction() float32 {
	if s.maxHealth <= 0 {
		return 0
	}
	return s.health / s.maxHealth
}

func (s *Status) Dead() bool {
	return s.health <= 0
}
