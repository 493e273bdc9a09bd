package entity

// Ingredient is both product composition data and the allergy vocabulary.
type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
