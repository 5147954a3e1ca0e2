package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "wikitrail/internal/platform/errors"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBudgetCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "absent.yaml")
	out, err := runCmd(t, "budget", "--width", "3", "--depth", "3")
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if !strings.Contains(out, "41 nodes (limit 800) ok") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runCmd(t, "budget", "--width", "3", "--depth", "6", "--max-nodes", "800")
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if !strings.Contains(out, "too large") {
		t.Fatalf("expected rejection, got %q", out)
	}

	if _, err := runCmd(t, "budget", "--config", cfgPath); err == nil {
		t.Fatal("an explicit missing config file should fail")
	}
}

func TestBudgetRejectsInvalidWidth(t *testing.T) {
	if _, err := runCmd(t, "budget", "--width", "0"); err == nil {
		t.Fatal("expected width 0 to be rejected")
	}
}

func TestOversizedTreeFailsBeforeFetching(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Main Page","links":[{"ns":0,"title":"Jazz"}]}]}}`))
	}))
	defer srv.Close()

	for _, args := range [][]string{
		{"tree"},
		{"tree", "Jazz"},
		{"play"},
	} {
		args = append(args, "--width", "3", "--depth", "6", "--no-cache", "--api-url", srv.URL)
		_, err := runCmd(t, args...)
		if !errors.Is(err, apperrors.ErrNodeBudget) {
			t.Fatalf("%v: expected node budget error, got %v", args, err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}
