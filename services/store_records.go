package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/sync/errgroup"

	"stockdesk/collections"
)

// itemLoadConcurrency bounds how many documents have their items loaded at once.
const itemLoadConcurrency = 4

// RecordStore keeps documents in the PocketBase documents and
// document_items collections.
type RecordStore struct {
	app core.App
}

// NewRecordStore returns a RecordStore backed by app.
func NewRecordStore(app core.App) *RecordStore {
	return &RecordStore{app: app}
}

func (s *RecordStore) List(ownerID string, kind Kind) ([]Document, error) {
	filter := "owner = {:owner}"
	params := dbx.Params{"owner": ownerID}
	if kind != "" {
		filter += " && kind = {:kind}"
		params["kind"] = string(kind)
	}

	records, err := s.app.FindRecordsByFilter(collections.Documents, filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]Document, len(records))
	g := new(errgroup.Group)
	g.SetLimit(itemLoadConcurrency)
	for i, rec := range records {
		g.Go(func() error {
			items, err := loadItems(s.app, rec.Id)
			if err != nil {
				return err
			}
			docs[i] = recordToDocument(rec, items)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *RecordStore) Get(ownerID, id string) (*Document, error) {
	rec, err := findOwnedDocument(s.app, ownerID, id)
	if err != nil {
		return nil, err
	}
	items, err := loadItems(s.app, rec.Id)
	if err != nil {
		return nil, err
	}
	doc := recordToDocument(rec, items)
	return &doc, nil
}

// Save upserts the header and replaces all items inside one transaction, so
// a failure leaves the previously stored document untouched.
func (s *RecordStore) Save(doc *Document) (string, error) {
	if doc == nil || doc.OwnerID == "" {
		return "", ErrNotFound
	}

	var saved *core.Record
	err := s.app.RunInTransaction(func(txApp core.App) error {
		var rec *core.Record
		if doc.ID == "" {
			col, err := txApp.FindCollectionByNameOrId(collections.Documents)
			if err != nil {
				return fmt.Errorf("find documents collection: %w", err)
			}
			rec = core.NewRecord(col)
			rec.Set("owner", doc.OwnerID)
		} else {
			existing, err := findOwnedDocument(txApp, doc.OwnerID, doc.ID)
			if err != nil {
				return err
			}
			rec = existing
		}

		applyDocument(rec, doc)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save document: %w", err)
		}

		old, err := txApp.FindRecordsByFilter(collections.DocumentItems,
			"document = {:doc}", "", 0, 0, dbx.Params{"doc": rec.Id})
		if err != nil {
			return fmt.Errorf("find old items: %w", err)
		}
		for _, item := range old {
			if err := txApp.Delete(item); err != nil {
				return fmt.Errorf("delete item %s: %w", item.Id, err)
			}
		}

		itemsCol, err := txApp.FindCollectionByNameOrId(collections.DocumentItems)
		if err != nil {
			return fmt.Errorf("find document_items collection: %w", err)
		}
		for i, item := range doc.Items {
			r := core.NewRecord(itemsCol)
			r.Set("document", rec.Id)
			r.Set("sort_order", i+1)
			applyItem(r, item)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save item %d: %w", i+1, err)
			}
		}

		saved = rec
		return nil
	})
	if err != nil {
		return "", err
	}

	doc.ID = saved.Id
	doc.CreatedAt = saved.GetDateTime("created").Time()
	doc.UpdatedAt = saved.GetDateTime("updated").Time()
	return saved.Id, nil
}

func (s *RecordStore) Delete(ownerID, id string) error {
	rec, err := findOwnedDocument(s.app, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// findOwnedDocument loads a document header, reporting ErrNotFound both for
// missing records and for records owned by someone else.
func findOwnedDocument(app core.App, ownerID, id string) (*core.Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rec, err := app.FindRecordById(collections.Documents, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	if rec.GetString("owner") != ownerID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func loadItems(app core.App, documentID string) ([]LineItem, error) {
	records, err := app.FindRecordsByFilter(collections.DocumentItems,
		"document = {:doc}", "sort_order", 0, 0, dbx.Params{"doc": documentID})
	if err != nil {
		return nil, fmt.Errorf("load items of %s: %w", documentID, err)
	}
	items := make([]LineItem, len(records))
	for i, r := range records {
		items[i] = LineItem{
			Description:     r.GetString("description"),
			PartNumber:      r.GetString("part_number"),
			MadeBy:          r.GetString("made_by"),
			Quantity:        r.GetFloat("quantity"),
			UnitPrice:       r.GetFloat("unit_price"),
			DiscountPercent: r.GetFloat("discount_percent"),
			SubVendorName:   r.GetString("sub_vendor_name"),
			SubVendorPrice:  r.GetFloat("sub_vendor_price"),
			UnitOfMeasure:   r.GetString("uom"),
		}
	}
	return items, nil
}

func applyDocument(rec *core.Record, doc *Document) {
	rec.Set("kind", string(doc.Kind))
	rec.Set("number", doc.Number)
	rec.Set("date", doc.Date)
	rec.Set("status", string(doc.Status))
	rec.Set("seller_name", doc.Seller.Name)
	rec.Set("seller_address", doc.Seller.Address)
	rec.Set("customer_name", doc.Customer.Name)
	rec.Set("customer_address", doc.Customer.Address)
	rec.Set("tax_rate", doc.TaxRatePercent)
	rec.Set("incharge", doc.Incharge)
	rec.Set("validity", doc.Validity)
	rec.Set("payment_terms", doc.PaymentTerms)
	rec.Set("delivery_terms", doc.DeliveryTerms)
	rec.Set("notes", doc.Notes)
}

func applyItem(r *core.Record, item LineItem) {
	r.Set("description", item.Description)
	r.Set("part_number", item.PartNumber)
	r.Set("made_by", item.MadeBy)
	r.Set("quantity", item.Quantity)
	r.Set("unit_price", item.UnitPrice)
	r.Set("discount_percent", item.DiscountPercent)
	r.Set("sub_vendor_name", item.SubVendorName)
	r.Set("sub_vendor_price", item.SubVendorPrice)
	r.Set("uom", item.UnitOfMeasure)
}

func recordToDocument(rec *core.Record, items []LineItem) Document {
	if items == nil {
		items = []LineItem{}
	}
	return Document{
		ID:             rec.Id,
		OwnerID:        rec.GetString("owner"),
		Kind:           Kind(rec.GetString("kind")),
		Number:         rec.GetString("number"),
		Date:           rec.GetString("date"),
		Status:         Status(rec.GetString("status")),
		Seller:         Party{Name: rec.GetString("seller_name"), Address: rec.GetString("seller_address")},
		Customer:       Party{Name: rec.GetString("customer_name"), Address: rec.GetString("customer_address")},
		Items:          items,
		TaxRatePercent: rec.GetFloat("tax_rate"),
		Incharge:       rec.GetString("incharge"),
		Validity:       rec.GetString("validity"),
		PaymentTerms:   rec.GetString("payment_terms"),
		DeliveryTerms:  rec.GetString("delivery_terms"),
		Notes:          rec.GetString("notes"),
		CreatedAt:      rec.GetDateTime("created").Time(),
		UpdatedAt:      rec.GetDateTime("updated").Time(),
	}
}
