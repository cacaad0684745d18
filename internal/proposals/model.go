package proposals

import (
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
)

// Record is the persisted unit. JSON names match the stored collection layout.
type Record struct {
	ID               string                   `json:"id"`
	YourName         string                   `json:"yourName"`
	PartnerName      string                   `json:"partnerName"`
	RelationshipType catalog.RelationshipType `json:"relationshipType"`
	Tone             catalog.Tone             `json:"tone"`
	Language         catalog.Language         `json:"language"`
	Message          string                   `json:"message"`
	Photos           []string                 `json:"photos"`
	PhotoCaptions    []string                 `json:"photoCaptions"`
	BackgroundMusic  string                   `json:"backgroundMusic"`
	CustomSlug       string                   `json:"customSlug,omitempty"`
	Plan             catalog.Plan             `json:"plan"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// Draft is a record before the store assigns its id and creation time.
type Draft struct {
	YourName         string
	PartnerName      string
	RelationshipType catalog.RelationshipType
	Tone             catalog.Tone
	Language         catalog.Language
	Message          string
	Photos           []string
	PhotoCaptions    []string
	BackgroundMusic  string
	CustomSlug       string
	Plan             catalog.Plan
}

func (d Draft) toRecord(id string, createdAt time.Time) Record {
	return Record{
		ID:               id,
		YourName:         d.YourName,
		PartnerName:      d.PartnerName,
		RelationshipType: d.RelationshipType,
		Tone:             d.Tone,
		Language:         d.Language,
		Message:          d.Message,
		Photos:           cloneStrings(d.Photos),
		PhotoCaptions:    cloneStrings(d.PhotoCaptions),
		BackgroundMusic:  d.BackgroundMusic,
		CustomSlug:       d.CustomSlug,
		Plan:             d.Plan,
		CreatedAt:        createdAt,
	}
}

// Limits returns the entitlements of the record's plan.
func (r Record) Limits() catalog.Limits {
	return r.Plan.Limits()
}

func cloneStrings(values []string) []string {
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
