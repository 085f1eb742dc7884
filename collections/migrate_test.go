package collections_test

import (
	"testing"

	"stockdesk/collections"
	"stockdesk/testhelpers"
)

var defaultStatuses = []string{"pending", "partial", "closed"}

func TestMigrateLegacyStatuses(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "legacy@example.com")

	tests := []struct {
		stored string
		want   string
	}{
		{"Draft", "pending"},
		{"Pending", "pending"},
		{"In Progress", "partial"},
		{"Completed", "closed"},
		{"closed", "closed"},
		{"", "pending"},
		{"Archived", "Archived"},
	}

	ids := make([]string, len(tests))
	for i, tt := range tests {
		doc := testhelpers.CreateTestDocument(t, app, user.Id, "enquiry", "ENQ-"+tt.stored)
		doc.Set("status", tt.stored)
		if err := app.Save(doc); err != nil {
			t.Fatalf("save %q: %v", tt.stored, err)
		}
		ids[i] = doc.Id
	}

	if err := collections.MigrateLegacyStatuses(app, defaultStatuses); err != nil {
		t.Fatalf("MigrateLegacyStatuses() error: %v", err)
	}

	for i, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			doc, err := app.FindRecordById("documents", ids[i])
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if got := doc.GetString("status"); got != tt.want {
				t.Errorf("status %q migrated to %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}

func TestMigrateLegacyStatuses_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "twice@example.com")
	doc := testhelpers.CreateTestDocument(t, app, user.Id, "quotation", "QTN-1")
	doc.Set("status", "In Progress")
	if err := app.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := collections.MigrateLegacyStatuses(app, defaultStatuses); err != nil {
			t.Fatalf("run %d error: %v", i+1, err)
		}
	}

	got, _ := app.FindRecordById("documents", doc.Id)
	if got.GetString("status") != "partial" {
		t.Errorf("status = %q, want partial", got.GetString("status"))
	}
}
