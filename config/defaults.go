package config

import "github.com/awantoch/foundryflow/constants"

// Default file locations for foundryflow.
const (
	// DefaultConfigPath is looked up in the working directory.
	DefaultConfigPath = constants.ConfigFileName
	// DefaultEnvPath is the dotenv file loaded before the config.
	DefaultEnvPath = constants.EnvFileName
)
