package handlers

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"stockdesk/services"
)

// Desk bundles the collaborators shared by the document API handlers.
type Desk struct {
	App      core.App
	Store    services.DocumentStore
	Identity *services.Identity
	Rules    services.Rules
	Defaults services.Profile
	Now      func() time.Time
}

// NewDesk returns a Desk whose identity provider and party book live in app.
func NewDesk(app core.App, store services.DocumentStore, rules services.Rules, defaults services.Profile) *Desk {
	return &Desk{
		App:      app,
		Store:    store,
		Identity: services.NewIdentity(app),
		Rules:    rules,
		Defaults: defaults,
		Now:      time.Now,
	}
}

func (d *Desk) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// profile returns the owner's letterhead, falling back to the configured
// defaults when it cannot be loaded.
func (d *Desk) profile(owner string) services.Profile {
	p, err := services.GetProfile(d.App, owner, d.Defaults)
	if err != nil {
		log.Printf("profile: load for %s: %v", owner, err)
		return d.Defaults
	}
	return p
}

// Register mounts the API routes on g.
func Register(g *router.RouterGroup[*core.RequestEvent], d *Desk) {
	// ── Public ───────────────────────────────────────────────
	g.POST("/auth/register", HandleRegister(d))
	g.POST("/auth/login", HandleLogin(d))

	private := g.Group("")
	private.BindFunc(RequireAuth(d.Identity))

	private.GET("/auth/me", HandleMe(d))
	private.GET("/options", HandleOptions(d))

	// ── Documents ────────────────────────────────────────────
	private.GET("/documents", HandleDocumentList(d))
	private.GET("/documents/next-number", HandleNextNumber(d))
	private.POST("/documents", HandleDocumentSave(d))
	private.GET("/documents/{id}/export/{format}", HandleDocumentExport(d))
	private.GET("/documents/{id}/view", HandleDocumentView(d))
	private.POST("/documents/{id}/derive", HandleDocumentDerive(d))
	private.GET("/documents/{id}", HandleDocumentGet(d))
	private.PUT("/documents/{id}", HandleDocumentSave(d))
	private.DELETE("/documents/{id}", HandleDocumentDelete(d))

	// ── Items import preview ─────────────────────────────────
	private.POST("/items/import", HandleItemsImport(d))

	// ── Address book ─────────────────────────────────────────
	private.GET("/customers", HandlePartyList(d, services.RoleCustomer))
	private.POST("/customers", HandlePartySave(d, services.RoleCustomer))
	private.GET("/sellers", HandlePartyList(d, services.RoleSeller))
	private.POST("/sellers", HandlePartySave(d, services.RoleSeller))

	// ── Company profile ──────────────────────────────────────
	private.GET("/profile", HandleProfileGet(d))
	private.PUT("/profile", HandleProfileSave(d))
}
