package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from aos-duel.cfg.json in configDir and sets
// default values. A missing file is fine; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("listenAddr", ":8080")
	viper.SetDefault("rosterPath", "./rosters/units.json")

	viper.SetDefault("sim.defaultTrials", 10000)
	viper.SetDefault("sim.maxTrials", 200000)
	viper.SetDefault("sim.progressEvery", 500)

	viper.SetConfigName("aos-duel.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
