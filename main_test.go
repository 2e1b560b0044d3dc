package main

import (
	"os"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Ranger Patrol Planner Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	// Test with default scenario directory
	originalScenarioDir := *scenarioDir
	*scenarioDir = "scenarios"
	defer func() { *scenarioDir = originalScenarioDir }()

	if _, err := os.Stat("scenarios"); os.IsNotExist(err) {
		t.Skip("Skipping test - scenarios directory not found")
	}

	patrolService, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if patrolService == nil {
		t.Fatal("Expected patrol service to be initialized")
	}
}

func TestInitializeServices_InvalidScenarioDir(t *testing.T) {
	// Test with non-existent scenario directory
	originalScenarioDir := *scenarioDir
	*scenarioDir = "/non/existent/path"
	defer func() { *scenarioDir = originalScenarioDir }()

	_, err := initializeServices()
	if err == nil {
		t.Error("Expected error for non-existent scenario directory")
	}
}

func TestFlagDefaults(t *testing.T) {
	// Test that flags have reasonable defaults
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *scenarioDir == "" {
		t.Error("Scenario directory should have a default value")
	}
}

// Note: We can't easily test main(), runHTTPServer(), and runStdioMCPWithInternalServer()
// without significant mocking or refactoring, as they start servers and block.
// These functions would be better tested in integration tests that start actual servers
// and test their endpoints.

func TestServiceInitialization(t *testing.T) {
	originalScenarioDir := *scenarioDir
	*scenarioDir = "scenarios"
	defer func() { *scenarioDir = originalScenarioDir }()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Service initialization panicked: %v", r)
		}
	}()

	if _, err := os.Stat("scenarios"); os.IsNotExist(err) {
		t.Skip("Skipping test - scenarios directory not found")
	}

	_, err := initializeServices()
	if err != nil {
		// This is expected if scenarios are missing, but shouldn't panic
		t.Logf("Service initialization failed as expected: %v", err)
	}
}
