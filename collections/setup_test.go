package collections_test

import (
	"testing"
	"time"

	"stockdesk/collections"
	"stockdesk/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"users",
	"parties",
	"company_profiles",
	"documents",
	"document_items",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_UsersTokenDuration(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("users collection: %v", err)
	}
	if users.Type != core.CollectionTypeAuth {
		t.Errorf("users type = %q, want %q", users.Type, core.CollectionTypeAuth)
	}
	want := int64(7 * 24 * time.Hour / time.Second)
	if users.AuthToken.Duration != want {
		t.Errorf("users auth token duration = %d, want %d", users.AuthToken.Duration, want)
	}
}

func TestSetup_DocumentFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("documents")

	fields := []string{
		"owner", "kind", "number", "date", "status",
		"seller_name", "seller_address", "customer_name", "customer_address",
		"tax_rate", "incharge", "validity", "payment_terms", "delivery_terms", "notes",
		"created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("documents: missing field %q", f)
		}
	}
	if col.Fields.GetByName("total_amount") != nil {
		t.Error("documents must not store an aggregate total")
	}
}

func TestSetup_DocumentItemFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("document_items")

	fields := []string{
		"document", "sort_order", "description", "part_number", "made_by",
		"quantity", "unit_price", "discount_percent", "sub_vendor_name", "sub_vendor_price", "uom",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("document_items: missing field %q", f)
		}
	}

	rel, ok := col.Fields.GetByName("document").(*core.RelationField)
	if !ok {
		t.Fatal("document_items.document is not a relation field")
	}
	if !rel.CascadeDelete {
		t.Error("document_items.document should cascade delete")
	}
}

func TestSetup_ItemsCascadeWithDocument(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "cascade@example.com")
	doc := testhelpers.CreateTestDocument(t, app, user.Id, "enquiry", "ENQ-1")
	testhelpers.CreateTestDocumentItem(t, app, doc.Id, 1, "Seal", 2, 10, 0)
	testhelpers.CreateTestDocumentItem(t, app, doc.Id, 2, "Gasket", 1, 5, 0)

	if err := app.Delete(doc); err != nil {
		t.Fatalf("delete document: %v", err)
	}

	items, err := app.FindRecordsByFilter("document_items", "document = {:id}", "", 0, 0, map[string]any{"id": doc.Id})
	if err != nil {
		t.Fatalf("query items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected items to be deleted with their document, got %d", len(items))
	}
}
