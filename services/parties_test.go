package services

import (
	"testing"

	"stockdesk/testhelpers"
)

func TestSaveParty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "parties@example.com")

	if err := SaveParty(app, user.Id, RoleCustomer, Party{Name: " Zenith Motors ", Address: "Chennai"}); err != nil {
		t.Fatalf("SaveParty() error = %v", err)
	}
	if err := SaveParty(app, user.Id, RoleCustomer, Party{Name: "Acme", Address: "Pune"}); err != nil {
		t.Fatalf("SaveParty() error = %v", err)
	}
	// Same name updates the address instead of adding a row.
	if err := SaveParty(app, user.Id, RoleCustomer, Party{Name: "Acme", Address: "Mumbai "}); err != nil {
		t.Fatalf("SaveParty() update error = %v", err)
	}
	// Nameless parties are ignored.
	if err := SaveParty(app, user.Id, RoleCustomer, Party{Address: "Nowhere"}); err != nil {
		t.Fatalf("SaveParty() empty error = %v", err)
	}

	got, err := ListParties(app, user.Id, RoleCustomer)
	if err != nil {
		t.Fatalf("ListParties() error = %v", err)
	}
	want := []Party{{Name: "Acme", Address: "Mumbai"}, {Name: "Zenith Motors", Address: "Chennai"}}
	if len(got) != len(want) {
		t.Fatalf("ListParties() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("party[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	sellers, err := ListParties(app, user.Id, RoleSeller)
	if err != nil {
		t.Fatalf("ListParties(seller) error = %v", err)
	}
	if len(sellers) != 0 {
		t.Errorf("expected no sellers, got %+v", sellers)
	}
}

func TestRememberParties(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "remember@example.com")
	other := testhelpers.CreateTestUser(t, app, "other@example.com")

	doc := &Document{
		OwnerID:  user.Id,
		Seller:   Party{Name: "Fervid Traders", Address: "Bengaluru"},
		Customer: Party{Name: "Acme", Address: "Pune"},
	}
	if err := RememberParties(app, doc); err != nil {
		t.Fatalf("RememberParties() error = %v", err)
	}

	sellers, _ := ListParties(app, user.Id, RoleSeller)
	customers, _ := ListParties(app, user.Id, RoleCustomer)
	if len(sellers) != 1 || sellers[0].Name != "Fervid Traders" {
		t.Errorf("sellers = %+v", sellers)
	}
	if len(customers) != 1 || customers[0].Name != "Acme" {
		t.Errorf("customers = %+v", customers)
	}

	foreign, _ := ListParties(app, other.Id, RoleCustomer)
	if len(foreign) != 0 {
		t.Errorf("parties leaked to another owner: %+v", foreign)
	}
}

func TestPartyValidate(t *testing.T) {
	if err := (Party{Name: "Acme"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if fieldError((Party{Address: "Pune"}).Validate(), "name") == nil {
		t.Error("Validate() should require a name")
	}
}
