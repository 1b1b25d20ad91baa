package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"img2base/internal/testsupport"
)

func TestConfigInitValidateAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", nil)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", nil); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite protection, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", nil); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target, nil)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "jpeg_quality = 75")
}

func TestConfigValidateReportsErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(env.dir, "bad.toml")
	testsupport.WriteFile(t, bad, []byte("[image]\njpeg_quality = 0\n[output]\ncolor = \"plaid\"\n"))
	if _, _, err := runCLI(t, []string{"config", "validate"}, bad, nil); err == nil {
		t.Fatal("expected validation error")
	}
}
