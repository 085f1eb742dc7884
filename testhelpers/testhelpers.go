// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/collections"
)

// TestPassword is the password given to every user created by CreateTestUser.
const TestPassword = "s3cret-pass"

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates a verified user with TestPassword and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Users)
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword(TestPassword)
	record.SetVerified(true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestDocument creates a document header owned by ownerID.
func CreateTestDocument(t *testing.T, app *pocketbase.PocketBase, ownerID, kind, number string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Documents)
	if err != nil {
		t.Fatalf("failed to find documents collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("kind", kind)
	record.Set("number", number)
	record.Set("date", "2025-06-02")
	record.Set("status", "pending")
	record.Set("customer_name", "Test Customer")
	record.Set("seller_name", "Test Seller")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test document: %v", err)
	}

	return record
}

// CreateTestDocumentItem creates a line item record under a document.
func CreateTestDocumentItem(t *testing.T, app *pocketbase.PocketBase, documentID string, sortOrder int, description string, qty, price, discount float64) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(collections.DocumentItems)
	if err != nil {
		t.Fatalf("failed to find document_items collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("document", documentID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit_price", price)
	record.Set("discount_percent", discount)
	record.Set("uom", "nes")
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test document item: %v", err)
	}
	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
