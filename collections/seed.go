package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// DemoEmail and DemoPassword are the credentials of the seeded demo account.
const (
	DemoEmail    = "demo@stockdesk.local"
	DemoPassword = "demo-pass-123"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	description     string
	partNumber      string
	madeBy          string
	quantity        float64
	unitPrice       float64
	discountPercent float64
	subVendorName   string
	subVendorPrice  float64
	uom             string
}

type documentDef struct {
	kind            string
	number          string
	date            string
	status          string
	sellerName      string
	sellerAddress   string
	customerName    string
	customerAddress string
	taxRate         float64
	incharge        string
	validity        string
	paymentTerms    string
	deliveryTerms   string
	items           []itemDef
}

var seedDocuments = []documentDef{
	{
		kind:            "enquiry",
		number:          "ENQ-25-26-001",
		date:            "2025-06-02",
		status:          "pending",
		sellerName:      "Sri Lakshmi Traders",
		sellerAddress:   "12 Market Road, Chennai",
		customerName:    "Coastal Marine Works",
		customerAddress: "Harbour Estate, Tuticorin",
		incharge:        "R. Kumar",
		items: []itemDef{
			{description: "Mechanical seal 35mm", partNumber: "MS-35", madeBy: "Grundfos", quantity: 2, unitPrice: 1522, subVendorName: "Pump House", subVendorPrice: 1380, uom: "nes"},
			{description: "Impeller bronze 6in", partNumber: "IMP-6B", madeBy: "Kirloskar", quantity: 2, unitPrice: 1664, subVendorName: "Pump House", subVendorPrice: 1510, uom: "nes"},
		},
	},
	{
		kind:            "quotation",
		number:          "QTN-25-26-001",
		date:            "2025-06-05",
		status:          "partial",
		sellerName:      "Sri Lakshmi Traders",
		sellerAddress:   "12 Market Road, Chennai",
		customerName:    "Coastal Marine Works",
		customerAddress: "Harbour Estate, Tuticorin",
		taxRate:         18,
		incharge:        "R. Kumar",
		validity:        "30 days",
		paymentTerms:    "50% advance, balance on delivery",
		deliveryTerms:   "Ex-works Chennai",
		items: []itemDef{
			{description: "Gland packing PTFE", partNumber: "GP-10", madeBy: "Champion", quantity: 10, unitPrice: 313, discountPercent: 10, uom: "roll"},
		},
	},
}

// Seed creates the demo account with a sample enquiry and quotation. It is
// safe to call on every startup because it returns early if the demo user
// already exists.
func Seed(app *pocketbase.PocketBase) error {
	usersCol, err := app.FindCollectionByNameOrId(Users)
	if err != nil {
		return fmt.Errorf("seed: could not find users collection: %w", err)
	}
	if existing, err := app.FindAuthRecordByEmail(usersCol, DemoEmail); err == nil && existing != nil {
		return nil // already seeded
	}

	log.Println("seed: demo user missing – inserting seed data …")

	docsCol, err := app.FindCollectionByNameOrId(Documents)
	if err != nil {
		return fmt.Errorf("seed: could not find documents collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId(DocumentItems)
	if err != nil {
		return fmt.Errorf("seed: could not find document_items collection: %w", err)
	}
	partiesCol, err := app.FindCollectionByNameOrId(Parties)
	if err != nil {
		return fmt.Errorf("seed: could not find parties collection: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		user := core.NewRecord(usersCol)
		user.SetEmail(DemoEmail)
		user.SetPassword(DemoPassword)
		user.SetVerified(true)
		if err := txApp.Save(user); err != nil {
			return fmt.Errorf("seed: create demo user: %w", err)
		}

		seenParties := map[string]bool{}
		saveParty := func(role, name, address string) error {
			key := role + "|" + name
			if name == "" || seenParties[key] {
				return nil
			}
			seenParties[key] = true
			p := core.NewRecord(partiesCol)
			p.Set("owner", user.Id)
			p.Set("role", role)
			p.Set("name", name)
			p.Set("address", address)
			return txApp.Save(p)
		}

		for _, d := range seedDocuments {
			doc := core.NewRecord(docsCol)
			doc.Set("owner", user.Id)
			doc.Set("kind", d.kind)
			doc.Set("number", d.number)
			doc.Set("date", d.date)
			doc.Set("status", d.status)
			doc.Set("seller_name", d.sellerName)
			doc.Set("seller_address", d.sellerAddress)
			doc.Set("customer_name", d.customerName)
			doc.Set("customer_address", d.customerAddress)
			doc.Set("tax_rate", d.taxRate)
			doc.Set("incharge", d.incharge)
			doc.Set("validity", d.validity)
			doc.Set("payment_terms", d.paymentTerms)
			doc.Set("delivery_terms", d.deliveryTerms)
			if err := txApp.Save(doc); err != nil {
				return fmt.Errorf("seed: create %s %s: %w", d.kind, d.number, err)
			}

			for i, it := range d.items {
				r := core.NewRecord(itemsCol)
				r.Set("document", doc.Id)
				r.Set("sort_order", i+1)
				r.Set("description", it.description)
				r.Set("part_number", it.partNumber)
				r.Set("made_by", it.madeBy)
				r.Set("quantity", it.quantity)
				r.Set("unit_price", it.unitPrice)
				r.Set("discount_percent", it.discountPercent)
				r.Set("sub_vendor_name", it.subVendorName)
				r.Set("sub_vendor_price", it.subVendorPrice)
				r.Set("uom", it.uom)
				if err := txApp.Save(r); err != nil {
					return fmt.Errorf("seed: create item %q: %w", it.description, err)
				}
			}

			if err := saveParty("seller", d.sellerName, d.sellerAddress); err != nil {
				return fmt.Errorf("seed: create seller: %w", err)
			}
			if err := saveParty("customer", d.customerName, d.customerAddress); err != nil {
				return fmt.Errorf("seed: create customer: %w", err)
			}
		}

		log.Printf("seed: created demo user %s with %d documents\n", DemoEmail, len(seedDocuments))
		return nil
	})
}
