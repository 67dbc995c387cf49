package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				DBPath:    filepath.Join(tmp, "expenses.db"),
				ExportDir: "./exports",
				ChartDir:  "./charts",
				TrendDays: 30,
				LogLevel:  "info",
			},
			wantErr: false,
		},
		{
			name: "valid config with sheets",
			config: Config{
				DBPath:              filepath.Join(tmp, "expenses.db"),
				ExportDir:           "./exports",
				ChartDir:            "./charts",
				TrendDays:           30,
				GoogleSpreadsheetID: "abc123",
				GoogleSheetName:     "Expenses",
				LogLevel:            "debug",
			},
			wantErr: false,
		},
		{
			name: "empty db path",
			config: Config{
				ExportDir: "./exports",
				ChartDir:  "./charts",
				TrendDays: 30,
				LogLevel:  "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "empty export dir",
			config: Config{
				DBPath:   filepath.Join(tmp, "expenses.db"),
				ChartDir: "./charts", TrendDays: 30, LogLevel: "info",
			},
			wantErr:     true,
			errorString: "export directory cannot be empty",
		},
		{
			name: "trend days too low",
			config: Config{
				DBPath:    filepath.Join(tmp, "expenses.db"),
				ExportDir: "./exports", ChartDir: "./charts",
				TrendDays: 0, LogLevel: "info",
			},
			wantErr:     true,
			errorString: "invalid trend days 0: must be at least 1",
		},
		{
			name: "trend days too high",
			config: Config{
				DBPath:    filepath.Join(tmp, "expenses.db"),
				ExportDir: "./exports", ChartDir: "./charts",
				TrendDays: 1000, LogLevel: "info",
			},
			wantErr:     true,
			errorString: "invalid trend days 1000: must be at most 365",
		},
		{
			name: "sheet name missing with spreadsheet id",
			config: Config{
				DBPath:    filepath.Join(tmp, "expenses.db"),
				ExportDir: "./exports", ChartDir: "./charts",
				TrendDays: 30, LogLevel: "info",
				GoogleSpreadsheetID: "abc123",
				GoogleSheetName:     "  ",
			},
			wantErr:     true,
			errorString: "Google sheet name cannot be empty",
		},
		{
			name: "bad log level",
			config: Config{
				DBPath:    filepath.Join(tmp, "expenses.db"),
				ExportDir: "./exports", ChartDir: "./charts",
				TrendDays: 30, LogLevel: "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		DBPath:    filepath.Join(dir, "expenses.db"),
		ExportDir: "./exports",
		ChartDir:  "./charts",
		TrendDays: 30,
		LogLevel:  "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSheetsConfigured(t *testing.T) {
	if (&Config{}).SheetsConfigured() {
		t.Fatalf("empty config should not report sheets configured")
	}
	if !(&Config{GoogleSpreadsheetID: "abc"}).SheetsConfigured() {
		t.Fatalf("config with spreadsheet id should report sheets configured")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo}, // Validate rejects it; fallback is info
	}
	for _, tc := range cases {
		if got := (&Config{LogLevel: tc.in}).SlogLevel(); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SQLITE_DB_PATH", "TREND_DAYS", "GOOGLE_SHEET_NAME"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.DBPath != "./data/expenses.db" {
		t.Fatalf("unexpected default db path %q", cfg.DBPath)
	}
	if cfg.TrendDays != 30 {
		t.Fatalf("unexpected default trend days %d", cfg.TrendDays)
	}
	if cfg.GoogleSheetName != "Expenses" {
		t.Fatalf("unexpected default sheet name %q", cfg.GoogleSheetName)
	}
}
