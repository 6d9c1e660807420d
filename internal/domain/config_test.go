package domain

import (
	"strings"
	"testing"
)

func TestGlobalConfigDir(t *testing.T) {
	got := GlobalConfigDir("/home/user/.config")
	want := "/home/user/.config/bugtrack"
	if got != want {
		t.Errorf("GlobalConfigDir() = %q, want %q", got, want)
	}
}

func TestLogPaths(t *testing.T) {
	if got, want := TaskLogPath("/p/.bugtrack", "42"), "/p/.bugtrack/logs/task-42.log"; got != want {
		t.Errorf("TaskLogPath() = %q, want %q", got, want)
	}
	if got, want := GlobalLogPath("/p/.bugtrack"), "/p/.bugtrack/logs/bugtrack.log"; got != want {
		t.Errorf("GlobalLogPath() = %q, want %q", got, want)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Store.Backend != BackendJSON {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, BackendJSON)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Auth.Password != DefaultSharedPassword {
		t.Errorf("Auth.Password = %q, want %q", cfg.Auth.Password, DefaultSharedPassword)
	}
	if cfg.Workflow.StrictStatusEdit {
		t.Error("Workflow.StrictStatusEdit should default to false")
	}
	if !cfg.Board.ShowReopened || cfg.Board.TrendDays != DefaultTrendDays {
		t.Errorf("Board = %+v, want reopened column and %d trend days", cfg.Board, DefaultTrendDays)
	}
}

func TestStoreConfig_StorePath(t *testing.T) {
	tests := []struct {
		backend string
		path    string
		want    string
	}{
		{BackendJSON, "", "/d/store.json"},
		{BackendGit, "", "/d/store.git"},
		{BackendSQLite, "", "/d/bugtrack.db"},
		{BackendSQLite, "/tmp/x.db", "/tmp/x.db"},
	}
	for _, tt := range tests {
		c := StoreConfig{Backend: tt.backend, Path: tt.path}
		if got := c.StorePath("/d"); got != tt.want {
			t.Errorf("StorePath(%s, %q) = %q, want %q", tt.backend, tt.path, got, tt.want)
		}
	}
}

func TestConfigTemplate(t *testing.T) {
	tmpl := ConfigTemplate()
	for _, section := range []string{"[store]", "[log]", "[auth]", "[workflow]", "[board]"} {
		if !strings.Contains(tmpl, section) {
			t.Errorf("template missing %s", section)
		}
	}
}
