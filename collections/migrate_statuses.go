package collections

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase"
)

// legacyStatuses maps status labels written by older clients onto the
// canonical lower-case set.
var legacyStatuses = map[string]string{
	"":            "pending",
	"draft":       "pending",
	"pending":     "pending",
	"open":        "pending",
	"in progress": "partial",
	"partial":     "partial",
	"completed":   "closed",
	"closed":      "closed",
}

// MigrateLegacyStatuses rewrites document statuses that are not part of the
// allowed set but have a known canonical equivalent in it. Documents with
// unrecognised labels are logged and left untouched.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateLegacyStatuses(app *pocketbase.PocketBase, allowed []string) error {
	docsCol, err := app.FindCollectionByNameOrId(Documents)
	if err != nil {
		return fmt.Errorf("migrate: could not find documents collection: %w", err)
	}

	records, err := app.FindAllRecords(docsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query documents: %w", err)
	}

	migrated := 0
	for _, doc := range records {
		current := doc.GetString("status")
		if slices.Contains(allowed, current) {
			continue
		}

		target, ok := legacyStatuses[strings.ToLower(strings.TrimSpace(current))]
		if !ok || !slices.Contains(allowed, target) {
			log.Printf("migrate: document %s has unknown status %q, leaving as is\n", doc.Id, current)
			continue
		}

		doc.Set("status", target)
		if err := app.Save(doc); err != nil {
			log.Printf("migrate: failed to update status of document %s: %v\n", doc.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: normalised %d legacy document status(es).\n", migrated)
	}
	return nil
}
