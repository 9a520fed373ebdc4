package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keys. Each can be set in playoffodds.yaml, as PLAYOFFODDS_<KEY> in the
// environment (or .env), or through the matching command flag.
const (
	KeyDataDir        = "data_dir"
	KeySeasonFile     = "season_file"
	KeyPlayoffFile    = "playoff_file"
	KeyColumnRef      = "column_ref"
	KeyOutput         = "output"
	KeyDB             = "db"
	KeyLogLevel       = "log_level"
	KeyFirstSeason    = "first_season"
	KeyLastSeason     = "last_season"
	KeyLegacyIndexing = "legacy_indexing"
)

const (
	envPrefix  = "PLAYOFFODDS"
	configName = "playoffodds"
)

type Config struct {
	// Input layout. Relative file paths are resolved against DataDir.
	DataDir     string
	SeasonFile  string // contains %d for the season year
	PlayoffFile string
	ColumnRef   string

	// Output
	Output string
	DBPath string

	// Analysis
	FirstSeason    int
	LastSeason     int
	LegacyIndexing bool

	// Telemetry
	LogLevel string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper, defaultDB string) {
	v.SetDefault(KeyDataDir, "data")
	v.SetDefault(KeySeasonFile, "seasonData/gl_1990_2016/GL%d.TXT")
	v.SetDefault(KeyPlayoffFile, "playoffData/GLDV.TXT")
	v.SetDefault(KeyColumnRef, "seasonData/columnNameRef.csv")
	v.SetDefault(KeyOutput, "figures/1990_2016_playoffprob.png")
	v.SetDefault(KeyDB, defaultDB)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFirstSeason, 1990)
	v.SetDefault(KeyLastSeason, 2016)
	v.SetDefault(KeyLegacyIndexing, false)
}

// Load resolves configuration from .env, the environment, an optional config
// file and any flags already bound on v. A cfgFile that does not exist is an
// error; the default playoffodds.yaml is optional.
func Load(v *viper.Viper, cfgFile, defaultDB string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v, defaultDB)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DataDir:        v.GetString(KeyDataDir),
		SeasonFile:     v.GetString(KeySeasonFile),
		PlayoffFile:    v.GetString(KeyPlayoffFile),
		ColumnRef:      v.GetString(KeyColumnRef),
		Output:         v.GetString(KeyOutput),
		DBPath:         v.GetString(KeyDB),
		FirstSeason:    v.GetInt(KeyFirstSeason),
		LastSeason:     v.GetInt(KeyLastSeason),
		LegacyIndexing: v.GetBool(KeyLegacyIndexing),
		LogLevel:       v.GetString(KeyLogLevel),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FirstSeason > c.LastSeason {
		return fmt.Errorf("first season %d is after last season %d", c.FirstSeason, c.LastSeason)
	}
	if !strings.Contains(c.SeasonFile, "%d") {
		return fmt.Errorf("season file pattern %q has no %%d for the year", c.SeasonFile)
	}
	return nil
}

// SeasonPattern is the game log path pattern with DataDir applied.
func (c *Config) SeasonPattern() string { return c.resolve(c.SeasonFile) }

// PlayoffPath is the division series log path with DataDir applied.
func (c *Config) PlayoffPath() string { return c.resolve(c.PlayoffFile) }

// ColumnRefPath is the column reference path with DataDir applied.
func (c *Config) ColumnRefPath() string { return c.resolve(c.ColumnRef) }

// Seasons lists every season in the configured range.
func (c *Config) Seasons() []int {
	out := make([]int, 0, c.LastSeason-c.FirstSeason+1)
	for s := c.FirstSeason; s <= c.LastSeason; s++ {
		out = append(out, s)
	}
	return out
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
