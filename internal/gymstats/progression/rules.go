package progression

// Model is the progression scheme selected by the user.
type Model string

const (
	ModelNone              Model = ""
	ModelLinearWeight      Model = "linear_weight"
	ModelLinearReps        Model = "linear_reps"
	ModelDoubleProgression Model = "double_progression"
)

func (m Model) IsValid() bool {
	switch m {
	case ModelNone, ModelLinearWeight, ModelLinearReps, ModelDoubleProgression:
		return true
	default:
		return false
	}
}

const (
	DefaultLinearWeightIncrement = 2.5
	DefaultLinearRepsIncrement   = 1
	DefaultDoubleWeightIncrement = 2.5
	DefaultDoubleRepIncrement    = 1
)

type RepRange struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

func (r RepRange) IsSet() bool {
	return r.Min > 0 && r.Max >= r.Min
}

// Rules is the user managed progression configuration.
type Rules struct {
	Enabled                          bool     `json:"enabled" toml:"enabled"`
	SelectedModel                    Model    `json:"selectedModel" toml:"selected_model"`
	LinearWeightIncrement            float64  `json:"linearWeightIncrement,omitempty" toml:"linear_weight_increment"`
	LinearRepsIncrement              int      `json:"linearRepsIncrement,omitempty" toml:"linear_reps_increment"`
	DoubleProgressionRepRange        RepRange `json:"doubleProgressionRepRange" toml:"double_progression_rep_range"`
	DoubleProgressionWeightIncrement float64  `json:"doubleProgressionWeightIncrement,omitempty" toml:"double_progression_weight_increment"`
	DoubleProgressionRepIncrement    int      `json:"doubleProgressionRepIncrement,omitempty" toml:"double_progression_rep_increment"`
}

func (r Rules) linearWeightIncrement() float64 {
	if r.LinearWeightIncrement > 0 {
		return r.LinearWeightIncrement
	}
	return DefaultLinearWeightIncrement
}

func (r Rules) linearRepsIncrement() int {
	if r.LinearRepsIncrement > 0 {
		return r.LinearRepsIncrement
	}
	return DefaultLinearRepsIncrement
}

func (r Rules) doubleWeightIncrement() float64 {
	if r.DoubleProgressionWeightIncrement > 0 {
		return r.DoubleProgressionWeightIncrement
	}
	return DefaultDoubleWeightIncrement
}

func (r Rules) doubleRepIncrement() int {
	if r.DoubleProgressionRepIncrement > 0 {
		return r.DoubleProgressionRepIncrement
	}
	return DefaultDoubleRepIncrement
}
