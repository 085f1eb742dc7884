package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/collections"
)

// Profile is the company letterhead printed on exports.
type Profile struct {
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	UserProfile string `json:"userProfile"`
}

// DefaultProfile is used until a user saves their own profile.
var DefaultProfile = Profile{
	CompanyName: "Your Company Name",
	Address:     "Your Company Address",
	Phone:       "+91-XXXXXXXXXX",
	Email:       "info@example.com",
}

// Validate checks the profile fields.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CompanyName, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.Email, is.EmailFormat),
		validation.Field(&p.Phone, validation.Length(0, 32)),
	)
}

// withDefaults fills empty fields from defaults.
func (p Profile) withDefaults(defaults Profile) Profile {
	fill := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return Profile{
		CompanyName: fill(p.CompanyName, defaults.CompanyName),
		Address:     fill(p.Address, defaults.Address),
		Phone:       fill(p.Phone, defaults.Phone),
		Email:       fill(p.Email, defaults.Email),
		UserProfile: p.UserProfile,
	}
}

func findProfileRecord(app core.App, ownerID string) (*core.Record, error) {
	rec, err := app.FindFirstRecordByFilter(collections.Profiles,
		"owner = {:owner}", dbx.Params{"owner": ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return rec, nil
}

// GetProfile returns the owner's company profile, with empty fields taken
// from defaults.
func GetProfile(app core.App, ownerID string, defaults Profile) (Profile, error) {
	rec, err := findProfileRecord(app, ownerID)
	if errors.Is(err, ErrNotFound) {
		return defaults, nil
	}
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		CompanyName: rec.GetString("company_name"),
		Address:     rec.GetString("address"),
		Phone:       rec.GetString("phone"),
		Email:       rec.GetString("email"),
		UserProfile: rec.GetString("user_profile"),
	}
	return p.withDefaults(defaults), nil
}

// SaveProfile validates and stores the owner's company profile.
func SaveProfile(app core.App, ownerID string, p Profile) (Profile, error) {
	p = Profile{
		CompanyName: strings.TrimSpace(p.CompanyName),
		Address:     strings.TrimSpace(p.Address),
		Phone:       strings.TrimSpace(p.Phone),
		Email:       strings.TrimSpace(p.Email),
		UserProfile: strings.TrimSpace(p.UserProfile),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}

	rec, err := findProfileRecord(app, ownerID)
	if errors.Is(err, ErrNotFound) {
		col, cerr := app.FindCollectionByNameOrId(collections.Profiles)
		if cerr != nil {
			return Profile{}, fmt.Errorf("find profiles collection: %w", cerr)
		}
		rec = core.NewRecord(col)
		rec.Set("owner", ownerID)
	} else if err != nil {
		return Profile{}, err
	}

	rec.Set("company_name", p.CompanyName)
	rec.Set("address", p.Address)
	rec.Set("phone", p.Phone)
	rec.Set("email", p.Email)
	rec.Set("user_profile", p.UserProfile)
	if err := app.Save(rec); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
