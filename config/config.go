// Package config holds the runtime settings for the solver binary.
// Flags win over environment variables (prefix IQFIT_), which win over
// defaults; everything else in the program is a fixed literal of the
// puzzle instance.
package config

import (
	"flag"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

func DefaultConfig() *Config {
	v := viper.New()
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("output", "solutions.txt")
	v.SetDefault("archive", "")
	v.SetDefault("worker-log", "")
	v.SetDefault("debug", false)
	v.SetDefault("cpu-profile", "")
	v.SetEnvPrefix("iqfit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// Load parses command-line args into the config. Flag defaults are
// read through viper, so an IQFIT_* environment variable shows up as
// the default for its flag and an explicit flag still overrides it.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("iqfit", flag.ContinueOnError)
	workers := fs.Int("workers", c.v.GetInt("workers"),
		"number of parallel workers")
	output := fs.String("output", c.v.GetString("output"),
		"path of the solutions file")
	archive := fs.String("archive", c.v.GetString("archive"),
		"optional sqlite archive for runs and solutions")
	workerLog := fs.String("worker-log", c.v.GetString("worker-log"),
		"optional YAML per-worker log file")
	debug := fs.Bool("debug", c.v.GetBool("debug"),
		"enable debug logging")
	cpuProfile := fs.String("cpu-profile", c.v.GetString("cpu-profile"),
		"write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.v.Set("workers", *workers)
	c.v.Set("output", *output)
	c.v.Set("archive", *archive)
	c.v.Set("worker-log", *workerLog)
	c.v.Set("debug", *debug)
	c.v.Set("cpu-profile", *cpuProfile)
	return nil
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// SanitizedSettings returns the settings map for the startup log line.
func (c *Config) SanitizedSettings() map[string]any {
	return map[string]any{
		"workers":     c.v.GetInt("workers"),
		"output":      c.v.GetString("output"),
		"archive":     c.v.GetString("archive"),
		"worker-log":  c.v.GetString("worker-log"),
		"debug":       c.v.GetBool("debug"),
		"cpu-profile": c.v.GetString("cpu-profile"),
	}
}
