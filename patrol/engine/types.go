package engine

// Terrain flag values as they appear in the wire-format terrain map.
const (
	TerrainImpassable = 0
	TerrainPassable   = 1
)

const (
	// Validation constants for scenario files. Raw Parameters only require
	// positive values; these bounds apply to scenarios loaded from disk.
	MinScenarioGridSize = 5
	MaxScenarioGridSize = 50
	MaxRangerCount      = 32
	MaxPlanSteps        = 500

	// DefaultMitigationFactor is the residual risk left on a covered cell:
	// a patrolled cell retains 20% of its original risk.
	DefaultMitigationFactor = 0.2

	// DefaultHighRiskThreshold marks cells counted in high-risk coverage.
	DefaultHighRiskThreshold = 0.7
)

// Cell identifies a grid position by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Route is one ranger's ordered patrol path. RangerID is assigned
// sequentially in generation order starting at 0.
type Route struct {
	RangerID int    `json:"ranger_id"`
	Path     []Cell `json:"path"`
}

// Stats summarizes the risk reduction achieved by a set of routes.
// Percentages are pre-formatted strings for the display consumers.
type Stats struct {
	BeforeRisk       float64 `json:"before_risk"`
	AfterRisk        float64 `json:"after_risk"`
	RiskReduction    string  `json:"risk_reduction"`
	HighRiskCoverage string  `json:"high_risk_coverage"`
}

// Parameters is the full input to one plan computation, as produced by the
// map-generation collaborator. All three maps are gridSize x gridSize and
// indexed [row][col].
type Parameters struct {
	GridSize    int         `json:"grid_size"`
	RangerCount int         `json:"ranger_count"`
	MaxSteps    int         `json:"max_steps"`
	RiskMap     [][]float64 `json:"risk_map"`
	AnimalMap   [][]bool    `json:"animal_map"`
	TerrainMap  [][]int     `json:"terrain_map"`
}

// Result is the immutable output of one plan computation.
type Result struct {
	Routes   []Route `json:"routes"`
	Coverage [][]int `json:"coverage"`
	Stats    Stats   `json:"stats"`
}
