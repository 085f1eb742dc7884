package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/collections"
)

// PartyRole distinguishes customers from sellers in the address book.
type PartyRole string

const (
	RoleCustomer PartyRole = "customer"
	RoleSeller   PartyRole = "seller"
)

// ListParties returns the owner's saved parties of role, sorted by name.
func ListParties(app core.App, ownerID string, role PartyRole) ([]Party, error) {
	records, err := app.FindRecordsByFilter(collections.Parties,
		"owner = {:owner} && role = {:role}", "name", 0, 0,
		dbx.Params{"owner": ownerID, "role": string(role)},
	)
	if err != nil {
		return nil, fmt.Errorf("list %s parties: %w", role, err)
	}

	parties := make([]Party, len(records))
	for i, r := range records {
		parties[i] = Party{Name: r.GetString("name"), Address: r.GetString("address")}
	}
	return parties, nil
}

// SaveParty remembers p under role, updating the address when a party with
// the same name already exists. Parties without a name are ignored.
func SaveParty(app core.App, ownerID string, role PartyRole, p Party) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil
	}
	address := strings.TrimSpace(p.Address)

	existing, err := app.FindFirstRecordByFilter(collections.Parties,
		"owner = {:owner} && role = {:role} && name = {:name}",
		dbx.Params{"owner": ownerID, "role": string(role), "name": name},
	)
	if err == nil {
		if existing.GetString("address") == address {
			return nil
		}
		existing.Set("address", address)
		if err := app.Save(existing); err != nil {
			return fmt.Errorf("update %s %q: %w", role, name, err)
		}
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("find %s %q: %w", role, name, err)
	}

	col, err := app.FindCollectionByNameOrId(collections.Parties)
	if err != nil {
		return fmt.Errorf("find parties collection: %w", err)
	}
	rec := core.NewRecord(col)
	rec.Set("owner", ownerID)
	rec.Set("role", string(role))
	rec.Set("name", name)
	rec.Set("address", address)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save %s %q: %w", role, name, err)
	}
	return nil
}

// RememberParties stores the seller and customer of doc in the owner's
// address book.
func RememberParties(app core.App, doc *Document) error {
	if err := SaveParty(app, doc.OwnerID, RoleSeller, doc.Seller); err != nil {
		return err
	}
	return SaveParty(app, doc.OwnerID, RoleCustomer, doc.Customer)
}

// Validate checks a party submitted for the address book.
func (p Party) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Address, validation.Length(0, 1000)),
	)
}
