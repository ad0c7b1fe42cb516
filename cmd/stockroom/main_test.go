package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, "stockroom.toml")
	content := fmt.Sprintf(`[paths]
staging_dir = %q
category_dir = %q
items_dir = %q
data_dir = %q
log_dir = %q
api_bind = "127.0.0.1:0"
`,
		filepath.Join(root, "staging"),
		filepath.Join(root, "by_category"),
		filepath.Join(root, "items"),
		filepath.Join(root, "data"),
		filepath.Join(root, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second init without --overwrite refuses to clobber.
	if _, err := executeCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := executeCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "staging_dir:") || !strings.Contains(out, "api_bind:") {
		t.Fatalf("output = %q", out)
	}
}

func TestItemsListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := executeCommand(t, "--config", configPath, "items", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No items in the ledger.") {
		t.Fatalf("output = %q", out)
	}
}

func TestItemsDeleteUnknown(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, err := executeCommand(t, "--config", configPath, "items", "delete", "DP404"); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestPhotosEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := executeCommand(t, "--config", configPath, "photos")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Staging folder is empty.") {
		t.Fatalf("output = %q", out)
	}
}

func TestStatsEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := executeCommand(t, "--config", configPath, "stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Staging photos:      0") {
		t.Fatalf("output = %q", out)
	}
}
