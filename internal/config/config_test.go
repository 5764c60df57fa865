package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
server: RASPISHAKE
network: AM
station: R7FA5
location: "00"
channel: EHZ
wait: 10
retry: 5
output_dir: /data/waveforms
save_file: /data/last_download.txt
optional_id: siteA
offline:
  from_time: "2024-01-01T00:00:00"
  to_time: "2024-01-01T01:00:00"
store:
  sqlite_path: /data/archive.db
api:
  enabled: true
  port: "9001"
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server != "RASPISHAKE" || cfg.Network != "AM" || cfg.Station != "R7FA5" {
		t.Fatalf("unexpected selectors: %+v", cfg)
	}
	if cfg.Location != "00" || cfg.Channel != "EHZ" {
		t.Fatalf("unexpected selectors: %+v", cfg)
	}
	if cfg.Wait != 10 || cfg.Retry != 5 {
		t.Fatalf("unexpected timings: wait=%v retry=%v", cfg.Wait, cfg.Retry)
	}
	if cfg.OptionalID != "siteA" {
		t.Fatalf("optional_id = %q", cfg.OptionalID)
	}
	if cfg.Offline.FromTime != "2024-01-01T00:00:00" || cfg.Offline.ToTime != "2024-01-01T01:00:00" {
		t.Fatalf("offline interval: %+v", cfg.Offline)
	}
	if cfg.Store.SQLitePath != "/data/archive.db" {
		t.Fatalf("sqlite_path = %q", cfg.Store.SQLitePath)
	}
	if !cfg.API.Enabled || cfg.API.Port != "9001" {
		t.Fatalf("api config: %+v", cfg.API)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: IRIS\nnetwork: IU\nstation: ANMO\nchannel: BHZ\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Wait != 10 || cfg.Retry != 5 {
		t.Fatalf("default timings: wait=%v retry=%v", cfg.Wait, cfg.Retry)
	}
	if cfg.OutputDir != "./waveforms" {
		t.Fatalf("default output_dir = %q", cfg.OutputDir)
	}
	if cfg.SaveFile != "last_download.txt" {
		t.Fatalf("default save_file = %q", cfg.SaveFile)
	}
	if cfg.Log.Level != "info" || !cfg.Log.IncludeStdout {
		t.Fatalf("default log config: %+v", cfg.Log)
	}
	if cfg.API.Enabled {
		t.Fatal("api should default to disabled")
	}
}

func TestLoadRejectsMissingSelectors(t *testing.T) {
	cases := map[string]string{
		"server":  "network: AM\nstation: X\nchannel: EHZ\n",
		"network": "server: IRIS\nstation: X\nchannel: EHZ\n",
		"station": "server: IRIS\nnetwork: AM\nchannel: EHZ\n",
		"channel": "server: IRIS\nnetwork: AM\nstation: X\n",
	}
	for missing, yaml := range cases {
		if _, err := Load(writeConfig(t, yaml)); err == nil {
			t.Errorf("config without %s should fail validation", missing)
		}
	}
}

func TestLoadRejectsBadTimings(t *testing.T) {
	base := "server: IRIS\nnetwork: AM\nstation: X\nchannel: EHZ\n"

	if _, err := Load(writeConfig(t, base+"wait: 0\n")); err == nil {
		t.Error("wait=0 should fail")
	}
	if _, err := Load(writeConfig(t, base+"retry: -1\n")); err == nil {
		t.Error("negative retry should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
