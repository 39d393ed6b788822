package knowledge

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

//go:embed data/*.json
var dataFS embed.FS

// Base holds the four knowledge records. A record that failed to load stays
// nil and its prompt section is simply not emitted; loading never aborts the
// process.
type Base struct {
	Contacts  *Contacts
	Faculties *Faculties
	History   *History
	Tuitions  *Tuitions
}

// Load parses the embedded records. Each record is loaded independently so a
// malformed file degrades that one category only.
func Load(ctx context.Context) *Base {
	b := &Base{}

	loadRecord(ctx, "data/contacts.json", &b.Contacts)
	loadRecord(ctx, "data/faculties.json", &b.Faculties)
	loadRecord(ctx, "data/history.json", &b.History)
	loadRecord(ctx, "data/tuitions.json", &b.Tuitions)

	return b
}

func loadRecord[T any](ctx context.Context, path string, dst **T) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("record", path).Msg("knowledge record missing")
		return
	}

	rec := new(T)
	if err := json.Unmarshal(data, rec); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("record", path).Msg("knowledge record malformed")
		return
	}
	*dst = rec
}

// Has reports whether the record backing a category loaded.
func (b *Base) Has(c core.Category) bool {
	switch c {
	case core.CategoryContacts:
		return b.Contacts != nil
	case core.CategoryFaculties:
		return b.Faculties != nil
	case core.CategoryHistory:
		return b.History != nil
	case core.CategoryTuitions:
		return b.Tuitions != nil
	}
	return false
}

func (b *Base) String() string {
	loaded := 0
	for _, c := range core.CategoryOrder {
		if b.Has(c) {
			loaded++
		}
	}
	return fmt.Sprintf("knowledge base: %d/%d records loaded", loaded, len(core.CategoryOrder))
}
