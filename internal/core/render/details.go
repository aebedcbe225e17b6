package render

import (
	"fmt"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// detailsLayout formats entry times in listings.
const detailsLayout = "02/01/2006 15:04"

// EntryDetails returns the one-line metadata shown under a history entry.
func EntryDetails(q *domain.Query) string {
	when := q.Timestamp.Local().Format(detailsLayout)
	if q.IsArtifact() {
		return fmt.Sprintf("%s · %s · salvo automaticamente", when, q.Origin.SizeLabel())
	}
	return fmt.Sprintf("%s · %ss · %s fontes", when, q.DurationLabel(), q.SourcesLabel())
}
