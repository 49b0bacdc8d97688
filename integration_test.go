//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/runner"
	"github.com/mattsolo1/grove-launcher/pkg/service"
	"github.com/mattsolo1/grove-launcher/pkg/store"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	projectsFile := filepath.Join(tmpDir, "projects.yaml")

	// Test 1: Missing projects file gets the default
	t.Run("DefaultProjects", func(t *testing.T) {
		svc, err := service.New(&service.Config{ProjectsFile: projectsFile}, nil)
		if err != nil {
			t.Fatalf("Failed to create service: %v", err)
		}
		if _, err := os.Stat(projectsFile); err != nil {
			t.Fatalf("Default projects file was not written: %v", err)
		}
		if _, ok := svc.Projects().Get(models.DefaultProjectName); !ok {
			t.Errorf("Expected default project %q", models.DefaultProjectName)
		}
	})

	// Test 2: Store round trip in YAML
	t.Run("StoreRoundTrip", func(t *testing.T) {
		st := store.New(projectsFile, nil)
		set, err := st.Load()
		if err != nil {
			t.Fatalf("Failed to load projects: %v", err)
		}
		if err := st.Save(set); err != nil {
			t.Fatalf("Failed to save projects: %v", err)
		}
		again, err := st.Load()
		if err != nil {
			t.Fatalf("Failed to reload projects: %v", err)
		}
		if len(again.Names()) != len(set.Names()) {
			t.Errorf("Expected %d projects, got %d", len(set.Names()), len(again.Names()))
		}
	})
}

func TestEndToEnd(t *testing.T) {
	if os.Getenv("RUN_E2E_TESTS") == "" {
		t.Skip("Skipping E2E test. Set RUN_E2E_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "my-project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Only waits run through the OS launcher so nothing is spawned.
	root := models.NewOptionNode()
	root.Set("Pause", models.NewExecutable(models.Wait{Seconds: 0.05}, models.Wait{Seconds: 0.05}))
	set := models.NewProjectSet()
	if err := set.Add(&models.Project{Name: "my-project", Path: projectDir, Options: root}); err != nil {
		t.Fatal(err)
	}
	projectsFile := filepath.Join(tmpDir, "projects.json")
	if err := store.New(projectsFile, nil).Save(set); err != nil {
		t.Fatalf("Failed to write projects: %v", err)
	}

	svc, err := service.New(&service.Config{ProjectsFile: projectsFile, StepDelay: 10 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	h, err := svc.RunPath(context.Background(), "my-project", []string{"Pause"})
	if err != nil {
		t.Fatalf("Failed to start run: %v", err)
	}
	var statuses []runner.Status
	for s := range h.Updates() {
		statuses = append(statuses, s)
	}
	outcome := h.Wait()
	if outcome.State != runner.Succeeded {
		t.Fatalf("Expected success, got %s: %v", outcome.State, outcome.Err)
	}
	if len(statuses) != 2 {
		t.Errorf("Expected 2 status updates, got %d", len(statuses))
	}

	problems, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("Expected no problems, got %v", problems)
	}

	t.Logf("Successfully completed end-to-end test")
}
