package collections_test

import (
	"testing"

	"stockdesk/collections"
	"stockdesk/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	user, err := app.FindAuthRecordByEmail("users", collections.DemoEmail)
	if err != nil {
		t.Fatalf("demo user not found: %v", err)
	}
	if !user.ValidatePassword(collections.DemoPassword) {
		t.Error("demo user password does not validate")
	}

	docs, err := app.FindRecordsByFilter("documents", "owner = {:owner}", "number", 0, 0, map[string]any{"owner": user.Id})
	if err != nil {
		t.Fatalf("query documents error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].GetString("kind") != "enquiry" || docs[0].GetFloat("tax_rate") != 0 {
		t.Errorf("first document = %s/%v, want enquiry without tax", docs[0].GetString("kind"), docs[0].GetFloat("tax_rate"))
	}

	items, _ := app.FindRecordsByFilter("document_items", "document = {:doc}", "sort_order", 0, 0, map[string]any{"doc": docs[0].Id})
	if len(items) != 2 {
		t.Fatalf("expected 2 enquiry items, got %d", len(items))
	}
	if items[0].GetFloat("unit_price") != 1522 {
		t.Errorf("first item unit_price = %v, want 1522", items[0].GetFloat("unit_price"))
	}

	parties, _ := app.FindRecordsByFilter("parties", "owner = {:owner}", "", 0, 0, map[string]any{"owner": user.Id})
	if len(parties) != 2 {
		t.Errorf("expected 2 parties (one seller, one customer), got %d", len(parties))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	docsCol, _ := app.FindCollectionByNameOrId("documents")
	all, err := app.FindAllRecords(docsCol)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 documents after seeding twice, got %d", len(all))
	}
}
