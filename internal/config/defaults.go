// Package config provides configuration loading and defaults for lifewheel.
package config

// DefaultConfigDir is the default location for lifewheel configuration.
const DefaultConfigDir = "~/.config/lifewheel"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "lifewheel.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultStateKey is the key the state snapshot is stored under.
const DefaultStateKey = "LifeWheelState_v1"

// DefaultScores holds the default score handling.
var DefaultScores = Scores{
	ClampManual: false,
}

// DefaultSeed holds the default template seeding behaviour.
var DefaultSeed = Seed{
	Auto: true,
}

// DefaultLog holds the default logging settings.
var DefaultLog = Log{
	Level:  "warn",
	Format: "text",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
