package entity

// AllergySeverity marks whether a child's allergy list is meaningful.
type AllergySeverity string

const (
	AllergyNone     AllergySeverity = "none"
	AllergyAllergic AllergySeverity = "allergic"
)

// Child is one member of the household. A child starts as a placeholder with
// an empty ID during household-size selection and receives a server id when
// the personal info form is submitted. The allergy list only means anything
// while AllergySeverity is "allergic".
type Child struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"firstName"`
	BirthDate       string          `json:"birthDate,omitempty"`
	Sex             string          `json:"sex,omitempty"`
	Parent          string          `json:"parent"`
	AllergySeverity AllergySeverity `json:"allergySeverity,omitempty"`
	Allergies       []Ingredient    `json:"allergies,omitempty"`
}

// Persisted reports whether the child has been assigned a server id.
func (c Child) Persisted() bool {
	return c.ID != ""
}

// Clone deep-copies the child including its allergy list.
func (c Child) Clone() Child {
	clone := c
	clone.Allergies = append([]Ingredient(nil), c.Allergies...)

	return clone
}

// ChildUpdate carries the editable child fields. Allergies are uploaded as
// ingredient names, mirroring the write shape the backend expects.
type ChildUpdate struct {
	ID              string          `json:"-"`
	FirstName       string          `json:"firstName,omitempty"`
	BirthDate       string          `json:"birthDate,omitempty"`
	Sex             string          `json:"sex,omitempty"`
	AllergySeverity AllergySeverity `json:"allergySeverity,omitempty"`
	Allergies       []string        `json:"allergies,omitempty"`
}
