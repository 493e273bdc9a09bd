package entity

// Product types as the catalog reports them. Recipes count against the
// subscription's serving capacity, add-ons do not.
const (
	ProductTypeRecipe = "recipe"
	ProductTypeAddOn  = "add-on"
)

// Product is a catalog entry. Ingredient lists double as the allergy
// vocabulary used to tag recipes against a child's allergies.
type Product struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	ImageURL            string           `json:"imageUrl"`
	NutritionImageURL   string           `json:"nutritionImageUrl,omitempty"`
	Price               float64          `json:"price"`
	FeaturedIngredients string           `json:"featuredIngredients,omitempty"`
	Ingredients         []Ingredient     `json:"ingredients"`
	Tags                []string         `json:"tags"`
	ProductType         string           `json:"productType"`
	Variants            []ProductVariant `json:"variants"`
	ShowVariants        bool             `json:"showVariants"`
}

// IsRecipe reports whether the product counts against serving capacity.
func (p Product) IsRecipe() bool {
	return p.ProductType == ProductTypeRecipe
}

// Clone deep-copies the product so carts hold values, not shared references.
func (p Product) Clone() Product {
	clone := p
	clone.Ingredients = append([]Ingredient(nil), p.Ingredients...)
	clone.Tags = append([]string(nil), p.Tags...)
	clone.Variants = append([]ProductVariant(nil), p.Variants...)

	return clone
}

// ProductVariant is a purchasable variation of a product.
type ProductVariant struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	SkuID string  `json:"skuId"`
	Price float64 `json:"price"`
}

// RecommendedProduct wraps a product with child-specific recommendation
// metadata.
type RecommendedProduct struct {
	Title             string  `json:"title"`
	ContainsAllergens bool    `json:"containsAllergens"`
	Product           Product `json:"product"`
	RecipeID          string  `json:"recipeId"`
}

// RecommendedProducts is the per-child catalog split.
type RecommendedProducts struct {
	TinyBeginnings    []RecommendedProduct `json:"tinyBeginnings"`
	Recommendations   []RecommendedProduct `json:"recommendations"`
	RemainingProducts []RecommendedProduct `json:"remainingProducts"`
}
