package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Collection names shared by services, handlers and tests.
const (
	Users         = "users"
	Documents     = "documents"
	DocumentItems = "document_items"
	Parties       = "parties"
	Profiles      = "company_profiles"
)

// AuthTokenDuration is how long a login token stays valid.
const AuthTokenDuration = 7 * 24 * time.Hour

// DocumentKinds lists the values accepted by the documents.kind select field.
var DocumentKinds = []string{"enquiry", "quotation", "purchase_order", "invoice"}

// PartyRoles lists the values accepted by the parties.role select field.
var PartyRoles = []string{"customer", "seller"}

// Setup programmatically creates/ensures the users auth collection and the
// documents, document_items, parties and company_profiles collections exist.
func Setup(app *pocketbase.PocketBase) {
	users := ensureUsers(app)

	ensureCollection(app, Parties, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    PartyRoles,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_parties_owner_role_name", true, "owner, role, name", "")
	})

	ensureCollection(app, Profiles, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "company_name"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "user_profile"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_company_profiles_owner", true, "owner", "")
	})

	documents := ensureCollection(app, Documents, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    DocumentKinds,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.TextField{Name: "seller_name"})
		c.Fields.Add(&core.TextField{Name: "seller_address"})
		c.Fields.Add(&core.TextField{Name: "customer_name"})
		c.Fields.Add(&core.TextField{Name: "customer_address"})
		// Number fields stay optional: a required NumberField rejects 0.
		c.Fields.Add(&core.NumberField{Name: "tax_rate"})
		c.Fields.Add(&core.TextField{Name: "incharge"})
		c.Fields.Add(&core.TextField{Name: "validity"})
		c.Fields.Add(&core.TextField{Name: "payment_terms"})
		c.Fields.Add(&core.TextField{Name: "delivery_terms"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_documents_owner_kind", false, "owner, kind", "")
	})

	ensureCollection(app, DocumentItems, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "document",
			Required:      true,
			CollectionId:  documents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "part_number"})
		c.Fields.Add(&core.TextField{Name: "made_by"})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
		c.Fields.Add(&core.NumberField{Name: "discount_percent"})
		c.Fields.Add(&core.TextField{Name: "sub_vendor_name"})
		c.Fields.Add(&core.NumberField{Name: "sub_vendor_price"})
		c.Fields.Add(&core.TextField{Name: "uom"})
		c.AddIndex("idx_document_items_document", false, "document, sort_order", "")
	})
}

// ensureUsers returns the users auth collection, creating it when the
// default one is missing, and pins its auth token lifetime.
func ensureUsers(app *pocketbase.PocketBase) *core.Collection {
	users, err := app.FindCollectionByNameOrId(Users)
	if err != nil || users == nil {
		users = core.NewAuthCollection(Users)
	}

	duration := int64(AuthTokenDuration / time.Second)
	if users.IsNew() || users.AuthToken.Duration != duration {
		users.AuthToken.Duration = duration
		if err := app.Save(users); err != nil {
			log.Fatalf("Failed to save collection %q: %v", Users, err)
		}
	}
	return users
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
