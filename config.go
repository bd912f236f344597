package rbm

// Config configures a restricted Boltzmann machine.
type Config struct {
	Visible int     // number of visible units, excluding the bias unit
	Hidden  int     // number of hidden units, excluding the bias unit
	Gain    float64 // scales the Glorot uniform range used to initialize weights
	Seed    int64   // seeds the model's random source

	Epochs       int     // default number of CD-1 epochs
	LearningRate float64 // default learning rate
}

// DefaultConf returns the configuration used by the movie-ratings walkthrough.
func DefaultConf(visible, hidden int) Config {
	return Config{
		Visible: visible,
		Hidden:  hidden,
		Gain:    0.1,

		Epochs:       5000,
		LearningRate: 0.1,
	}
}

func (conf Config) IsValid() bool {
	return conf.Visible >= 1 &&
		conf.Hidden >= 1 &&
		conf.Gain >= 0 &&
		conf.Epochs >= 0 &&
		conf.LearningRate >= 0
}

// validate returns the first offending field as a *ConfigError.
func (conf Config) validate() error {
	switch {
	case conf.Visible < 1:
		return &ConfigError{Field: "Visible", Value: conf.Visible}
	case conf.Hidden < 1:
		return &ConfigError{Field: "Hidden", Value: conf.Hidden}
	case conf.Gain < 0:
		return &ConfigError{Field: "Gain", Value: conf.Gain}
	case conf.Epochs < 0:
		return &ConfigError{Field: "Epochs", Value: conf.Epochs}
	case conf.LearningRate < 0:
		return &ConfigError{Field: "LearningRate", Value: conf.LearningRate}
	}
	return nil
}
