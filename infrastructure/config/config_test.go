package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockfiles"
)

func TestLoadConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()
	args := []string{
		"--configfile", filepath.Join(tempDir, "missing.conf"),
		"--datadir", filepath.Join(tempDir, "data"),
		"--logdir", filepath.Join(tempDir, "logs"),
	}

	cfg, remaining, err := LoadConfig(args)
	if err != nil {
		t.Fatalf("TestLoadConfigDefaults: LoadConfig: %s", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("TestLoadConfigDefaults: unexpected remaining args %v", remaining)
	}
	if cfg.ActiveNetParams != &MainNetParams {
		t.Fatalf("TestLoadConfigDefaults: expected mainnet, got %s", cfg.ActiveNetParams.Name)
	}
	if cfg.DataDir != filepath.Join(tempDir, "data", "main") {
		t.Fatalf("TestLoadConfigDefaults: unexpected data dir %s", cfg.DataDir)
	}
	if cfg.LogFile() != filepath.Join(tempDir, "logs", "main", defaultLogFilename) {
		t.Fatalf("TestLoadConfigDefaults: unexpected log file %s", cfg.LogFile())
	}
	if cfg.MaxSegmentSize != blockfiles.DefaultMaxSegmentSize {
		t.Fatalf("TestLoadConfigDefaults: unexpected max segment size %d", cfg.MaxSegmentSize)
	}
	if cfg.DebugLevel != defaultLogLevel {
		t.Fatalf("TestLoadConfigDefaults: unexpected debug level %s", cfg.DebugLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "wiccd.conf")
	content := "[Application Options]\nmaxsegmentsize=4096\ndebuglevel=debug\n"
	if err := os.WriteFile(configFile, []byte(content), 0600); err != nil {
		t.Fatalf("TestLoadConfigFile: WriteFile: %s", err)
	}

	// Command line options override the config file.
	cfg, _, err := LoadConfig([]string{
		"--configfile", configFile,
		"--datadir", tempDir,
		"--debuglevel", "BFIL=trace",
		"--testnet",
	})
	if err != nil {
		t.Fatalf("TestLoadConfigFile: LoadConfig: %s", err)
	}
	if cfg.MaxSegmentSize != 4096 {
		t.Fatalf("TestLoadConfigFile: expected the config file segment size, got %d", cfg.MaxSegmentSize)
	}
	if cfg.DebugLevel != "BFIL=trace" {
		t.Fatalf("TestLoadConfigFile: expected the command line debug level, got %s", cfg.DebugLevel)
	}
	if cfg.ActiveNetParams != &TestNetParams || cfg.DataDir != filepath.Join(tempDir, "testnet") {
		t.Fatalf("TestLoadConfigFile: unexpected network %s with data dir %s",
			cfg.ActiveNetParams.Name, cfg.DataDir)
	}
}

func TestLoadConfigRemainingArgs(t *testing.T) {
	tempDir := t.TempDir()
	_, remaining, err := LoadConfig([]string{
		"--configfile", filepath.Join(tempDir, "missing.conf"),
		"--datadir", tempDir,
		"path", "--kind", "rev", "--segment", "2",
	})
	if err != nil {
		t.Fatalf("TestLoadConfigRemainingArgs: LoadConfig: %s", err)
	}
	expected := []string{"path", "--kind", "rev", "--segment", "2"}
	if len(remaining) != len(expected) {
		t.Fatalf("TestLoadConfigRemainingArgs: expected %v, got %v", expected, remaining)
	}
	for i := range expected {
		if remaining[i] != expected[i] {
			t.Fatalf("TestLoadConfigRemainingArgs: expected %v, got %v", expected, remaining)
		}
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tempDir := t.TempDir()
	missingConfig := filepath.Join(tempDir, "missing.conf")

	tests := []struct {
		name string
		args []string
	}{
		{"two networks", []string{"--testnet", "--regtest"}},
		{"tiny segments", []string{"--maxsegmentsize", "10"}},
		{"bad level", []string{"--debuglevel", "loud"}},
		{"bad subsystem level", []string{"--debuglevel", "BFIL=loud"}},
		{"unknown flag", []string{"--nosuchflag"}},
	}

	for _, test := range tests {
		args := append([]string{"--configfile", missingConfig, "--datadir", tempDir}, test.args...)
		_, _, err := LoadConfig(args)
		if err == nil {
			t.Errorf("TestLoadConfigInvalid: %s: LoadConfig unexpectedly succeeded", test.name)
		}
	}
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("WICCD_TEST_DIR", "/tmp/wiccd")

	tests := []struct {
		input    string
		expected string
	}{
		{"$WICCD_TEST_DIR/data", "/tmp/wiccd/data"},
		{"/a/b/../c", "/a/c"},
		{"~/x", filepath.Join(filepath.Dir(DefaultHomeDir), "x")},
	}
	for _, test := range tests {
		got := cleanAndExpandPath(test.input)
		if got != filepath.Clean(test.expected) {
			t.Errorf("TestCleanAndExpandPath: cleanAndExpandPath(%q) = %q, want %q",
				test.input, got, test.expected)
		}
	}
}
