package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// chdir moves into a fresh temp dir so no stray playoffodds.yaml or .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	cfg, err := Load(viper.New(), "", "runs.db")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FirstSeason != 1990 || cfg.LastSeason != 2016 {
		t.Errorf("season range: want 1990-2016, got %d-%d", cfg.FirstSeason, cfg.LastSeason)
	}
	if got := len(cfg.Seasons()); got != 27 {
		t.Errorf("expected 27 seasons, got %d", got)
	}
	if got, want := cfg.SeasonPattern(), filepath.Join("data", "seasonData", "gl_1990_2016", "GL%d.TXT"); got != want {
		t.Errorf("SeasonPattern: got %q, want %q", got, want)
	}
	if got, want := cfg.PlayoffPath(), filepath.Join("data", "playoffData", "GLDV.TXT"); got != want {
		t.Errorf("PlayoffPath: got %q, want %q", got, want)
	}
	if cfg.DBPath != "runs.db" || cfg.LegacyIndexing {
		t.Errorf("unexpected defaults: db=%q legacy=%v", cfg.DBPath, cfg.LegacyIndexing)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdir(t)
	yaml := "data_dir: /srv/retro\nfirst_season: 1995\nlast_season: 2000\nlegacy_indexing: true\n"
	if err := os.WriteFile(filepath.Join(dir, "playoffodds.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(viper.New(), "", "runs.db")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FirstSeason != 1995 || cfg.LastSeason != 2000 || !cfg.LegacyIndexing {
		t.Errorf("config file not applied: %+v", cfg)
	}
	if got := cfg.ColumnRefPath(); got != filepath.Join("/srv/retro", "seasonData", "columnNameRef.csv") {
		t.Errorf("ColumnRefPath: got %q", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t)
	t.Setenv("PLAYOFFODDS_LAST_SEASON", "1993")
	t.Setenv("PLAYOFFODDS_OUTPUT", "/tmp/out.png")

	cfg, err := Load(viper.New(), "", "runs.db")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LastSeason != 1993 || cfg.Output != "/tmp/out.png" {
		t.Errorf("env not applied: last=%d output=%q", cfg.LastSeason, cfg.Output)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t)

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(viper.New(), "nope.yaml", "runs.db"); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
	t.Run("inverted range", func(t *testing.T) {
		v := viper.New()
		v.Set(KeyFirstSeason, 2010)
		v.Set(KeyLastSeason, 2000)
		if _, err := Load(v, "", "runs.db"); err == nil {
			t.Error("expected error for first season after last season")
		}
	})
	t.Run("pattern without year", func(t *testing.T) {
		v := viper.New()
		v.Set(KeySeasonFile, "GL.TXT")
		if _, err := Load(v, "", "runs.db"); err == nil {
			t.Error("expected error for season pattern without a year verb")
		}
	})
}
