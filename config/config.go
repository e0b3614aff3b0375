package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps the flag/env settings for the cruzado binaries. Values
// come from command-line flags, then CRUZADO_-prefixed environment
// variables, in that order of precedence.
type Config struct {
	v    *viper.Viper
	args []string
}

// Load parses args and binds them into the config.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("cruzado", pflag.ContinueOnError)
	fs.Bool("debug", false, "debug logging")
	fs.Bool("shell", false, "start the interactive shell")
	fs.Bool("batch", false, "treat arguments as puzzle bundles and solve them all")
	fs.Bool("randomize", false, "randomize candidate order among equally ranked words")
	fs.Int("node-limit", 0, "maximum search nodes before giving up (0 = unbounded)")
	fs.String("wordfile", "", "word-list file")
	fs.String("worddb", "", "word database DSN (sqlite)")
	fs.String("worddb-table", "words", "word database table")
	fs.String("output", "", "write the solution to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.v = viper.New()
	c.v.SetEnvPrefix("CRUZADO")
	c.v.AutomaticEnv()
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// Set overrides a setting; used by the shell's set command.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Settings returns the current settings for display.
func (c *Config) Settings() map[string]interface{} {
	return c.v.AllSettings()
}

func (c *Config) String() string {
	return fmt.Sprintf("%v", c.Settings())
}
