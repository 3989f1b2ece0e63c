//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "boochbooch-portal-api"
	ConsumerName = "boochbooch-order-form"

	StateOrdersEmpty   = "no orders exist"
	StateClientOrders  = "Cafe Pact has two orders"
	StateOrderExists   = "order pact-order-1 exists"
	StateProductionSet = "pending orders for Peach and Berry exist"
)

const (
	ClientName    = "Cafe Pact"
	ClientCode    = "pact-code"
	AdminPassword = "pact-admin"

	ExistingOrderID = "pact-order-1"
	MissingOrderID  = "pact-order-404"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order form consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleSubmitPayload is the order form body used across interactions.
func ExampleSubmitPayload() map[string]any {
	return map[string]any{
		"clientName": ClientName,
		"clientCode": ClientCode,
		"flavor":     "Peach",
		"size":       "48-Pack",
		"quantity":   4,
	}
}

// ExampleLookupPayload carries the credentials seeded by StateClientOrders.
func ExampleLookupPayload() map[string]any {
	return map[string]any{
		"clientName": ClientName,
		"clientCode": ClientCode,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
