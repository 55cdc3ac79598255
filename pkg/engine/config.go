package engine

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-3.5-turbo"

// Config holds configuration for the engine.
type Config struct {
	// Model is sent with every completion and reported by Status.
	Model string
}

// model returns the effective model, defaulting to DefaultModel.
func (c Config) model() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}
