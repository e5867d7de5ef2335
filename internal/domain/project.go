package domain

import "time"

const ProjectsTable = "projects"

// Column names of the projects table
const (
	ColumnOfferName   = "offer_name"
	ColumnPromise     = "promise"
	ColumnAudience    = "audience"
	ColumnCalendlyURL = "calendly_url"
	ColumnOwnerID     = "owner_id"
)

// Project is a client project captured by the intake form. Every content
// column is nullable; OwnerID is nil when no session existed at submission.
type Project struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	OfferName   *string   `json:"offer_name"`
	Promise     *string   `json:"promise"`
	Audience    *string   `json:"audience"`
	CalendlyURL *string   `json:"calendly_url"`
	OwnerID     *string   `json:"owner_id"`
}

// Row is a record handed to the record store, keyed by column name.
// A nil value stores NULL.
type Row map[string]any

// ProjectRow builds the insert row for a project using the exact column set
func ProjectRow(offerName, promise, audience, calendlyURL string, ownerID *string) Row {
	row := Row{
		ColumnOfferName:   offerName,
		ColumnPromise:     promise,
		ColumnAudience:    audience,
		ColumnCalendlyURL: calendlyURL,
		ColumnOwnerID:     nil,
	}
	if ownerID != nil {
		row[ColumnOwnerID] = *ownerID
	}
	return row
}
