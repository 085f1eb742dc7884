package services

import (
	"errors"
	"testing"
	"time"

	"stockdesk/collections"
	"stockdesk/testhelpers"
)

func TestIdentity_RegisterAndLogin(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := NewIdentity(app)

	reg, err := id.Register(Credentials{Email: " New@Example.com ", Password: "long-enough"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.UserID == "" || reg.Token == "" {
		t.Fatalf("Register() session = %+v", reg)
	}
	if reg.Email != "new@example.com" {
		t.Errorf("Email = %q, want normalised", reg.Email)
	}

	sess, err := id.Login(Credentials{Email: "new@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.UserID != reg.UserID {
		t.Errorf("Login() user = %q, want %q", sess.UserID, reg.UserID)
	}

	validity := time.Until(sess.ExpiresAt)
	if validity < collections.AuthTokenDuration-time.Minute || validity > collections.AuthTokenDuration+time.Minute {
		t.Errorf("token valid for %v, want about %v", validity, collections.AuthTokenDuration)
	}
}

func TestIdentity_RegisterErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "taken@example.com")
	id := NewIdentity(app)

	if _, err := id.Register(Credentials{Email: "taken@example.com", Password: "long-enough"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Register() error = %v, want ErrEmailTaken", err)
	}

	_, err := id.Register(Credentials{Email: "short@example.com", Password: "abc"})
	if fieldError(err, "password") == nil {
		t.Errorf("short password error = %v, want password validation error", err)
	}

	_, err = id.Register(Credentials{Email: "nope", Password: "long-enough"})
	if fieldError(err, "email") == nil {
		t.Errorf("bad email error = %v, want email validation error", err)
	}
}

func TestIdentity_LoginErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "user@example.com")
	id := NewIdentity(app)

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"wrong password", Credentials{Email: "user@example.com", Password: "wrong-pass"}},
		{"unknown email", Credentials{Email: "ghost@example.com", Password: testhelpers.TestPassword}},
		{"empty", Credentials{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Login(tt.creds); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestIdentity_Authenticate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "auth@example.com")
	id := NewIdentity(app)

	sess, err := id.Login(Credentials{Email: "auth@example.com", Password: testhelpers.TestPassword})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	for _, token := range []string{sess.Token, "Bearer " + sess.Token} {
		got, err := id.Authenticate(token)
		if err != nil {
			t.Fatalf("Authenticate(%.12q...) error = %v", token, err)
		}
		if got.UserID != sess.UserID {
			t.Errorf("Authenticate() user = %q, want %q", got.UserID, sess.UserID)
		}
	}

	for _, bad := range []string{"", "Bearer ", "garbage", sess.Token + "x"} {
		if _, err := id.Authenticate(bad); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Authenticate(%q) error = %v, want ErrNotAuthenticated", bad, err)
		}
	}
}
