package reflection

import (
	"math"
	"strings"
)

// -----------------------------------------------------------------------------
// Scoring Configuration
// -----------------------------------------------------------------------------

// KeywordBonus adds a fixed bonus when a keyword occurs in a task title.
// Bonuses live in an ordered list so that score accumulation is performed in
// a fixed sequence and stays bit-identical across runs.
type KeywordBonus struct {
	Word  string  `json:"word"`
	Bonus float64 `json:"bonus"`
}

// ScoringConfig holds every constant the complexity scorer consumes. The
// scorer itself is stateless; swapping the config is the only way to change
// its behavior.
type ScoringConfig struct {
	// BaseWeights maps a canonical task category to its base complexity.
	BaseWeights map[TaskType]float64 `json:"base_weights"`
	// DefaultBase applies when a category has no entry in BaseWeights.
	DefaultBase float64 `json:"default_base"`
	// DepWeight is added once per direct dependency.
	DepWeight float64 `json:"dep_weight"`
	// DependentWeight is added once per direct dependent.
	DependentWeight float64 `json:"dependent_weight"`
	// Keywords are matched case-insensitively against task titles.
	Keywords []KeywordBonus `json:"keywords"`
	// Min and Max clamp the final score.
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScoringConfig returns the built-in scoring table.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseWeights: map[TaskType]float64{
			TypeDocumentation: 0.8,
			TypeCommandLine:   0.9,
			TypeConfiguration: 0.9,
			TypeCode:          1.0,
			TypeIDEAction:     1.0,
			TypeIntegration:   1.2,
			TypeTest:          1.1,
		},
		DefaultBase:     1.0,
		DepWeight:       0.2,
		DependentWeight: 0.1,
		Keywords: []KeywordBonus{
			{Word: "complex", Bonus: 0.3},
			{Word: "advanced", Bonus: 0.2},
			{Word: "integration", Bonus: 0.2},
			{Word: "optimization", Bonus: 0.2},
			{Word: "validation", Bonus: 0.1},
			{Word: "analysis", Bonus: 0.1},
			{Word: "reflection", Bonus: 0.1},
			{Word: "management", Bonus: 0.1},
		},
		Min: 0.8,
		Max: 3.0,
	}
}

// base resolves the base weight for a category.
func (c ScoringConfig) base(t TaskType) float64 {
	if w, ok := c.BaseWeights[t]; ok {
		return w
	}
	return c.DefaultBase
}

// titleBonus sums the bonuses of every keyword present in the title.
func (c ScoringConfig) titleBonus(title string) float64 {
	lower := strings.ToLower(title)
	var bonus float64
	for _, kw := range c.Keywords {
		if strings.Contains(lower, kw.Word) {
			bonus += kw.Bonus
		}
	}
	return bonus
}

// -----------------------------------------------------------------------------
// Complexity Scoring
// -----------------------------------------------------------------------------

// Score computes a complexity estimate for every task in the graph. The
// graph must be structurally valid; defects surface as the corresponding
// typed error and no scores are produced.
//
// A task's score is its category base weight, plus a fixed increment per
// dependency and per dependent, plus keyword bonuses from its title, clamped
// to the configured range and rounded to two decimals. The same graph and
// config always produce the same scores.
func Score(g TaskGraph, cfg ScoringConfig) (map[string]float64, error) {
	if err := Validate(g).Err(); err != nil {
		return nil, err
	}
	return scoreAll(g, cfg), nil
}

func scoreAll(g TaskGraph, cfg ScoringConfig) map[string]float64 {
	dependents := g.Dependents()
	scores := make(map[string]float64, len(g))
	for _, id := range g.IDs() {
		scores[id] = scoreTask(g[id], len(dependents[id]), cfg)
	}
	return scores
}

func scoreTask(task *Task, dependentCount int, cfg ScoringConfig) float64 {
	score := cfg.base(task.Category())
	score += cfg.DepWeight * float64(len(task.Deps))
	score += cfg.DependentWeight * float64(dependentCount)
	score += cfg.titleBonus(task.Title)
	return round2(clamp(score, cfg.Min, cfg.Max))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds to two decimal places, matching the precision tasks are
// persisted with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
