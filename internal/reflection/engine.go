package reflection

import "time"

// -----------------------------------------------------------------------------
// Engine Configuration
// -----------------------------------------------------------------------------

// Config bundles the tunable inputs of a reflection pass.
type Config struct {
	Scoring ScoringConfig  `json:"scoring"`
	Policy  ParallelPolicy `json:"policy"`
}

// DefaultConfig returns the built-in scoring table and parallel policy.
func DefaultConfig() Config {
	return Config{
		Scoring: DefaultScoringConfig(),
		Policy:  DefaultParallelPolicy(),
	}
}

// -----------------------------------------------------------------------------
// Reflection Engine
// -----------------------------------------------------------------------------

// Engine runs the full reflection pipeline over task graphs: validation,
// complexity scoring, topological sequencing and parallel grouping. An
// engine holds configuration only; it carries no per-graph state, so a
// single instance may be shared across goroutines.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// Meta captures bookkeeping about a reflection pass, persisted alongside the
// reflected tasks.
type Meta struct {
	ReflectedAt    time.Time `json:"reflected_at"`
	TopoOrder      []string  `json:"topo_order"`
	CyclesDetected int       `json:"cycles_detected"`
	Warnings       []Warning `json:"warnings,omitempty"`
}

// Result is the outcome of a reflection pass. Tasks are re-emitted in
// execution order with their order index and complexity filled in.
type Result struct {
	Tasks  []Task             `json:"tasks"`
	Order  []string           `json:"order"`
	Groups []Group            `json:"groups"`
	Scores map[string]float64 `json:"scores"`
	Meta   Meta               `json:"meta"`
}

// Task returns the reflected task with the given id, or nil.
func (r *Result) Task(id string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}

// Validate checks the graph without running the rest of the pipeline.
func (e *Engine) Validate(g TaskGraph) *ValidationResult {
	return Validate(g)
}

// Score computes complexity scores using the engine's scoring config.
func (e *Engine) Score(g TaskGraph) (map[string]float64, error) {
	return Score(g, e.cfg.Scoring)
}

// Reflect runs the whole pipeline: the graph is validated once, then scored,
// sequenced and grouped. Structural defects abort the pass with the
// corresponding typed error and no partial result. The same graph and
// configuration always produce the same result, apart from the timestamp.
func (e *Engine) Reflect(g TaskGraph) (*Result, error) {
	validation := Validate(g)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	scores := scoreAll(g, e.cfg.Scoring)
	order, err := topoOrder(g)
	if err != nil {
		return nil, err
	}
	groups := parallelGroups(g, e.cfg.Policy)

	tasks := make([]Task, 0, len(order))
	for i, id := range order {
		task := *g[id]
		task.Order = i
		task.Complexity = scores[id]
		tasks = append(tasks, task)
	}

	return &Result{
		Tasks:  tasks,
		Order:  order,
		Groups: groups,
		Scores: scores,
		Meta: Meta{
			ReflectedAt:    e.now().UTC(),
			TopoOrder:      order,
			CyclesDetected: 0,
			Warnings:       validation.Warnings,
		},
	}, nil
}
