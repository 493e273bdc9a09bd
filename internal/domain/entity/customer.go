// Package entity contains the core business objects of the engine,
// each representing a unique, identifiable concept within the domain.
package entity

// GuardianType describes the relationship of the account holder to the
// children in the household.
type GuardianType string

const (
	GuardianParent             GuardianType = "parent"
	GuardianParentAndExpecting GuardianType = "parent_and_expecting"
	GuardianCaregiver          GuardianType = "caregiver"
	GuardianExpecting          GuardianType = "expecting"
	GuardianOther              GuardianType = "other"
)

// CustomerStatus is the customer lifecycle. It only advances forward:
// lead -> plan_selection -> checkout -> subscriber. deactivated is terminal.
type CustomerStatus string

const (
	StatusLead          CustomerStatus = "lead"
	StatusPlanSelection CustomerStatus = "plan_selection"
	StatusCheckout      CustomerStatus = "checkout"
	StatusSubscriber    CustomerStatus = "subscriber"
	StatusDeactivated   CustomerStatus = "deactivated"
)

// Customer is the account and household record. It is created on the first
// onboarding write and mutated by every onboarding and dashboard form; it is
// never deleted client-side.
type Customer struct {
	ID                     string         `json:"id"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	Email                  string         `json:"email"`
	PhoneNumber            string         `json:"phoneNumber,omitempty"`
	Status                 CustomerStatus `json:"status"`
	GuardianType           GuardianType   `json:"guardianType"`
	HasPassword            bool           `json:"hasPassword"`
	HasActiveSubscriptions bool           `json:"hasActiveSubscriptions"`
	Children               []Child        `json:"children"`
	Addresses              []Address      `json:"addresses"`
	// Subscriptions rides along on customer payloads and is re-keyed by
	// child id before it reaches the store.
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// Clone deep-copies the customer so snapshots never alias store state.
func (c Customer) Clone() Customer {
	clone := c
	clone.Children = make([]Child, len(c.Children))
	for i, child := range c.Children {
		clone.Children[i] = child.Clone()
	}
	clone.Addresses = append([]Address(nil), c.Addresses...)
	clone.Subscriptions = append([]Subscription(nil), c.Subscriptions...)

	return clone
}

// CustomerCreation is the minimal payload for the first onboarding write.
type CustomerCreation struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Zipcode   string `json:"zipcode,omitempty" validate:"omitempty,len=5,numeric"`
}

// CustomerUpdate carries a partial customer record. Nil fields are omitted
// from the PATCH body.
type CustomerUpdate struct {
	ID           string          `json:"-"`
	FirstName    *string         `json:"firstName,omitempty"`
	LastName     *string         `json:"lastName,omitempty"`
	Email        *string         `json:"email,omitempty"`
	PhoneNumber  *string         `json:"phoneNumber,omitempty"`
	Status       *CustomerStatus `json:"status,omitempty"`
	GuardianType *GuardianType   `json:"guardianType,omitempty"`
}

// CustomerDetails sets the customer's password alongside a profile update.
// Only used during onboarding; the password never enters store state.
type CustomerDetails struct {
	ID          string `validate:"required"`
	Password    string `validate:"required,min=8"`
	PhoneNumber string `validate:"required"`
	Email       string `validate:"omitempty,email"`
}

// Address is a customer shipping address. Customers currently carry at most
// one active address.
type Address struct {
	ID            string `json:"id"`
	StreetAddress string `json:"streetAddress"`
	ApartmentInfo string `json:"apartmentInfo,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
	IsActive      bool   `json:"isActive,omitempty"`
}

// Full reports whether the address carries every field checkout requires.
func (a Address) Full() bool {
	return a.City != "" && a.State != "" && a.StreetAddress != "" && a.Zipcode != ""
}
