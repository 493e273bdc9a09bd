// Package flow implements the onboarding question graph and its gating
// rules: which question the user may see, where to send them when they ask
// for one they have not earned, and the macro-step progress above the forms.
package flow

// QuestionID identifies one onboarding question.
type QuestionID string

const (
	QuestionAccountInfo   QuestionID = "account_info"
	QuestionHouseholdInfo QuestionID = "household_info"
	QuestionChildrenInfo  QuestionID = "children_info"
	QuestionBundleInfo    QuestionID = "bundle_info"
	QuestionMealSelection QuestionID = "meal_selection"
	QuestionAddOns        QuestionID = "add_ons"
	QuestionCheckout      QuestionID = "checkout"
)

// Step is one of the three macro steps shown above the onboarding forms.
type Step int

const (
	StepMeAndMyKids Step = iota
	StepMyFirstBox
	StepCheckout
)

// Question is one node of the onboarding graph. Prev and Next are empty at
// the graph's edges.
type Question struct {
	ID   QuestionID
	Step Step
	Prev QuestionID
	Next QuestionID
}

var questions = map[QuestionID]Question{
	QuestionAccountInfo: {
		ID:   QuestionAccountInfo,
		Step: StepMeAndMyKids,
		Next: QuestionHouseholdInfo,
	},
	QuestionHouseholdInfo: {
		ID:   QuestionHouseholdInfo,
		Step: StepMeAndMyKids,
		Prev: QuestionAccountInfo,
		Next: QuestionChildrenInfo,
	},
	QuestionChildrenInfo: {
		ID:   QuestionChildrenInfo,
		Step: StepMeAndMyKids,
		Prev: QuestionHouseholdInfo,
		Next: QuestionBundleInfo,
	},
	QuestionBundleInfo: {
		ID:   QuestionBundleInfo,
		Step: StepMyFirstBox,
		Prev: QuestionChildrenInfo,
		Next: QuestionMealSelection,
	},
	QuestionMealSelection: {
		ID:   QuestionMealSelection,
		Step: StepMyFirstBox,
		Prev: QuestionBundleInfo,
		Next: QuestionAddOns,
	},
	QuestionAddOns: {
		ID:   QuestionAddOns,
		Step: StepMyFirstBox,
		Prev: QuestionMealSelection,
		Next: QuestionCheckout,
	},
	// Add-ons are optional, so backing out of checkout skips them.
	QuestionCheckout: {
		ID:   QuestionCheckout,
		Step: StepCheckout,
		Prev: QuestionMealSelection,
	},
}

// DefaultQuestion is where unknown routes and fresh visitors land.
var DefaultQuestion = questions[QuestionAccountInfo]

// Lookup resolves a question by id.
func Lookup(id QuestionID) (Question, bool) {
	question, ok := questions[id]

	return question, ok
}

// StepRoots maps each macro step to the question a step click lands on.
var StepRoots = map[Step]QuestionID{
	StepMeAndMyKids: QuestionHouseholdInfo,
	StepMyFirstBox:  QuestionBundleInfo,
	StepCheckout:    QuestionCheckout,
}
