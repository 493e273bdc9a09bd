package store

import (
	"context"
	"log/slog"
	"sync"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"

	"go.uber.org/fx"
)

// User-facing copy for failed subscription-store operations. A few
// operations surface the server's own message instead (see failureMessage).
const (
	errLoadAccount            = "Error loading account, please try login in or reloading the page"
	errCreateConsumer         = "There was an error creating your account, please try again later"
	errUpdateCustomer         = "There was an error updating your account, please try again later"
	errCustomerDetails        = "There was an error updating your account details, please try again later"
	errAddAddress             = "There was an error adding an address to your account, please try again later"
	errUpdateAddress          = "There was an error updating your address, please try again later"
	errHousehold              = "There was an error updating your household information, please try again later"
	errUpdateChild            = "There was an error creating your account, please try again later"
	errCreateSubscription     = "There was an error adding a meal plan for your child, please try again later"
	errChargeDate             = "There was an error updating your charge date, please try again later"
	errCancelSubscription     = "There was an error cancelling your subscription, please try again later"
	errReactivateSubscription = "There was an error activating your subscription, please try again later"
)

// Operation keys for the stale-response guard.
const (
	opInitStore          = "initStore"
	opInitOnboarding     = "initOnboarding"
	opCreateConsumer     = "createConsumer"
	opUpdateCustomer     = "updateCustomer"
	opCustomerDetails    = "addCustomerDetails"
	opAddAddress         = "addAddress"
	opUpdateAddress      = "updateAddress"
	opHousehold          = "addHouseholdInfo"
	opUpdateChild        = "updateChild"
	opCreateSubscription = "createSubscription"
	opChargeDate         = "updateChargeDate"
	opPrecancel          = "precancelSubscription"
	opCancel             = "cancelSubscription"
	opReactivate         = "reactivateSubscription"
)

// SubscriptionState is the customer account state: the flat customer record,
// the household children, addresses, and the per-child subscriptions keyed
// by child id.
type SubscriptionState struct {
	Init          bool
	Status        Status
	Err           string
	Customer      entity.Customer
	Subscriptions map[string]entity.Subscription
}

func initialSubscriptionState() SubscriptionState {
	return SubscriptionState{
		Status: StatusIdle,
		Customer: entity.Customer{
			GuardianType: entity.GuardianParent,
			Status:       entity.StatusLead,
			// One placeholder child so the household form always has a row.
			Children: []entity.Child{{}},
		},
		Subscriptions: map[string]entity.Subscription{},
	}
}

// applyCustomer reduces a full server customer record into state. The
// ride-along subscriptions array is re-keyed by child id.
func (st *SubscriptionState) applyCustomer(customer entity.Customer) {
	subs := customer.Subscriptions
	customer.Subscriptions = nil
	st.Customer = customer
	for _, sub := range subs {
		st.Subscriptions[sub.CustomerChild] = sub
	}
}

func (st SubscriptionState) clone() SubscriptionState {
	clone := st
	clone.Customer = st.Customer.Clone()
	clone.Subscriptions = make(map[string]entity.Subscription, len(st.Subscriptions))
	for childID, sub := range st.Subscriptions {
		clone.Subscriptions[childID] = sub
	}

	return clone
}

// SubscriptionStore owns the customer account state and every operation that
// mutates it. Each operation carries a monotonic sequence token so responses
// that lost a race against a newer call of the same operation are dropped
// instead of clobbering fresher state.
type SubscriptionStore struct {
	mu    sync.Mutex
	state SubscriptionState
	seq   map[string]uint64

	customers     repository.CustomerRepository
	children      repository.ChildRepository
	addresses     repository.AddressRepository
	subscriptions repository.SubscriptionRepository
	logger        *slog.Logger
}

// SubscriptionStoreParams holds dependencies for the subscription store,
// injected by Fx.
type SubscriptionStoreParams struct {
	fx.In

	Customers     repository.CustomerRepository
	Children      repository.ChildRepository
	Addresses     repository.AddressRepository
	Subscriptions repository.SubscriptionRepository
	Logger        *slog.Logger
}

// NewSubscriptionStore creates the customer account store.
func NewSubscriptionStore(params SubscriptionStoreParams) *SubscriptionStore {
	return &SubscriptionStore{
		state:         initialSubscriptionState(),
		seq:           map[string]uint64{},
		customers:     params.Customers,
		children:      params.Children,
		addresses:     params.Addresses,
		subscriptions: params.Subscriptions,
		logger:        params.Logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *SubscriptionStore) Snapshot() SubscriptionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

func (s *SubscriptionStore) begin(op string, loading bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[op]++
	if loading {
		s.state.Status = StatusLoading
	}

	return s.seq[op]
}

// stale reports whether a newer call of the same operation has started since
// the token was issued. Callers must hold the lock.
func (s *SubscriptionStore) stale(op string, token uint64) bool {
	if s.seq[op] != token {
		s.logger.Debug("dropped stale response", slog.String("operation", op))

		return true
	}

	return false
}

func (s *SubscriptionStore) fail(op string, token uint64, err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stale(op, token) {
		s.state.Status = StatusError
		s.state.Err = failureMessage(err, fallback)
	}

	return err
}

// InitStore loads the customer attached to the session. Init flips on either
// way so the caller knows the load settled.
func (s *SubscriptionStore) InitStore(ctx context.Context) error {
	token := s.begin(opInitStore, false)

	customer, err := s.customers.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opInitStore, token) {
		return err
	}
	s.state.Init = true
	if err != nil {
		s.state.Err = errLoadAccount

		return err
	}
	s.state.applyCustomer(*customer)

	return nil
}

// InitOnboarding loads the session customer if one exists. A failed load is
// expected for fresh visitors, so the error is logged and swallowed.
func (s *SubscriptionStore) InitOnboarding(ctx context.Context) error {
	token := s.begin(opInitOnboarding, false)

	customer, err := s.customers.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opInitOnboarding, token) {
		return nil
	}
	s.state.Init = true
	if err != nil {
		s.logger.Info("onboarding init without an existing account", slog.Any("error", err))

		return nil
	}
	s.state.applyCustomer(*customer)

	return nil
}

// CreateConsumer registers the account from the first onboarding form. State
// is reset to its initial value before the created customer is merged, so a
// previous session's leftovers never leak into a new signup.
func (s *SubscriptionStore) CreateConsumer(ctx context.Context, payload entity.CustomerCreation) error {
	token := s.begin(opCreateConsumer, true)

	created, err := s.customers.Create(ctx, payload)
	if err != nil {
		return s.fail(opCreateConsumer, token, err, errCreateConsumer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opCreateConsumer, token) {
		return nil
	}
	s.state = initialSubscriptionState()
	s.state.applyCustomer(*created)
	s.state.Init = true
	s.state.Status = StatusSuccess

	return nil
}

// UpdateCustomer patches the flat customer record. Server messages surface
// verbatim on failure.
func (s *SubscriptionStore) UpdateCustomer(ctx context.Context, payload entity.CustomerUpdate) error {
	token := s.begin(opUpdateCustomer, true)

	customer, err := s.customers.Update(ctx, payload)
	if err != nil {
		return s.fail(opUpdateCustomer, token, err, errUpdateCustomer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opUpdateCustomer, token) {
		return nil
	}
	s.state.applyCustomer(*customer)
	s.state.Init = true
	s.state.Status = StatusSuccess

	return nil
}

// AddCustomerDetails sets the password and patches contact details in one
// operation. Onboarding only; the password never enters state.
func (s *SubscriptionStore) AddCustomerDetails(ctx context.Context, details entity.CustomerDetails) error {
	token := s.begin(opCustomerDetails, true)

	if err := validate.Struct(details); err != nil {
		return s.fail(opCustomerDetails, token, errors.WithStack(err), errCustomerDetails)
	}

	if err := s.customers.SetPassword(ctx, details.ID, details.Password); err != nil {
		return s.fail(opCustomerDetails, token, err, errCustomerDetails)
	}

	update := entity.CustomerUpdate{
		ID:          details.ID,
		PhoneNumber: &details.PhoneNumber,
	}
	if details.Email != "" {
		update.Email = &details.Email
	}
	customer, err := s.customers.Update(ctx, update)
	if err != nil {
		return s.fail(opCustomerDetails, token, err, errCustomerDetails)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opCustomerDetails, token) {
		return nil
	}
	s.state.applyCustomer(*customer)
	s.state.Init = true
	s.state.Status = StatusSuccess

	return nil
}

// AddAddress creates a shipping address and appends it to the account.
// Server messages surface verbatim on failure.
func (s *SubscriptionStore) AddAddress(ctx context.Context, address entity.Address) error {
	token := s.begin(opAddAddress, true)

	created, err := s.addresses.Create(ctx, address)
	if err != nil {
		return s.fail(opAddAddress, token, err, errAddAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opAddAddress, token) {
		return nil
	}
	s.state.Customer.Addresses = append(s.state.Customer.Addresses, *created)
	s.state.Init = true
	s.state.Status = StatusSuccess

	return nil
}

// UpdateAddress replaces the matching address in place, appending when the
// id is not found.
func (s *SubscriptionStore) UpdateAddress(ctx context.Context, address entity.Address) error {
	token := s.begin(opUpdateAddress, true)

	updated, err := s.addresses.Update(ctx, address)
	if err != nil {
		return s.fail(opUpdateAddress, token, err, errUpdateAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opUpdateAddress, token) {
		return nil
	}
	s.state.Status = StatusSuccess
	for i := range s.state.Customer.Addresses {
		if s.state.Customer.Addresses[i].ID == updated.ID {
			s.state.Customer.Addresses[i] = *updated

			return nil
		}
	}
	s.state.Customer.Addresses = append(s.state.Customer.Addresses, *updated)

	return nil
}

// AddHouseholdInfo commits the household form: the guardian type is patched
// first, then children removed from the form are deleted, then the remaining
// children are created or updated concurrently. State only changes when
// every write succeeds, so a partial failure is never visible.
func (s *SubscriptionStore) AddHouseholdInfo(ctx context.Context, guardianType entity.GuardianType, children []entity.Child) error {
	token := s.begin(opHousehold, true)

	s.mu.Lock()
	parentID := s.state.Customer.ID
	existing := make([]entity.Child, len(s.state.Customer.Children))
	copy(existing, s.state.Customer.Children)
	s.mu.Unlock()

	kept := make(map[string]struct{}, len(children))
	for _, child := range children {
		if child.Persisted() {
			kept[child.ID] = struct{}{}
		}
	}

	gt := guardianType
	updated, err := s.customers.Update(ctx, entity.CustomerUpdate{ID: parentID, GuardianType: &gt})
	if err != nil {
		return s.fail(opHousehold, token, err, errHousehold)
	}

	var removed []entity.Child
	for _, child := range existing {
		if _, ok := kept[child.ID]; child.Persisted() && !ok {
			removed = append(removed, child)
		}
	}
	if err := s.deleteChildren(ctx, removed); err != nil {
		return s.fail(opHousehold, token, err, errHousehold)
	}

	committed, err := s.upsertChildren(ctx, parentID, children)
	if err != nil {
		return s.fail(opHousehold, token, err, errHousehold)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opHousehold, token) {
		return nil
	}
	s.state.applyCustomer(*updated)
	s.state.Customer.Children = committed
	s.state.Status = StatusSuccess

	return nil
}

func (s *SubscriptionStore) deleteChildren(ctx context.Context, removed []entity.Child) error {
	errs := make([]error, len(removed))
	var wg sync.WaitGroup
	for i, child := range removed {
		wg.Add(1)
		go func(i int, childID string) {
			defer wg.Done()
			errs[i] = s.children.Delete(ctx, childID)
		}(i, child.ID)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (s *SubscriptionStore) upsertChildren(ctx context.Context, parentID string, children []entity.Child) ([]entity.Child, error) {
	committed := make([]entity.Child, len(children))
	errs := make([]error, len(children))
	var wg sync.WaitGroup
	for i, child := range children {
		wg.Add(1)
		go func(i int, child entity.Child) {
			defer wg.Done()
			var result *entity.Child
			var err error
			if child.Persisted() {
				result, err = s.children.Update(ctx, childUpdateFrom(child))
			} else {
				result, err = s.children.Create(ctx, child, parentID)
			}
			if err != nil {
				errs[i] = err

				return
			}
			committed[i] = *result
		}(i, child)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return committed, nil
}

func childUpdateFrom(child entity.Child) entity.ChildUpdate {
	names := make([]string, 0, len(child.Allergies))
	for _, allergy := range child.Allergies {
		names = append(names, allergy.Name)
	}

	return entity.ChildUpdate{
		ID:              child.ID,
		FirstName:       child.FirstName,
		BirthDate:       child.BirthDate,
		Sex:             child.Sex,
		AllergySeverity: child.AllergySeverity,
		Allergies:       names,
	}
}

// UpdateChild patches one child and replaces it in place. An unknown id is
// not appended.
func (s *SubscriptionStore) UpdateChild(ctx context.Context, payload entity.ChildUpdate) error {
	token := s.begin(opUpdateChild, true)

	child, err := s.children.Update(ctx, payload)
	if err != nil {
		return s.fail(opUpdateChild, token, err, errUpdateChild)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opUpdateChild, token) {
		return nil
	}
	s.state.Status = StatusSuccess
	for i := range s.state.Customer.Children {
		if s.state.Customer.Children[i].ID == child.ID {
			s.state.Customer.Children[i] = *child

			break
		}
	}

	return nil
}

// CreateSubscription selects a bundle for one child. The backend upserts on
// the customer/child key, so re-selection replaces rather than duplicates.
func (s *SubscriptionStore) CreateSubscription(ctx context.Context, payload entity.SubscriptionCreation) error {
	token := s.begin(opCreateSubscription, true)

	sub, err := s.subscriptions.Create(ctx, payload)
	if err != nil {
		return s.fail(opCreateSubscription, token, err, errCreateSubscription)
	}

	return s.applySubscription(opCreateSubscription, token, sub)
}

// UpdateChargeDate moves the next order charge date for one subscription.
func (s *SubscriptionStore) UpdateChargeDate(ctx context.Context, subscriptionID, nextOrderChargeDate string) error {
	token := s.begin(opChargeDate, true)

	sub, err := s.subscriptions.UpdateChargeDate(ctx, subscriptionID, nextOrderChargeDate)
	if err != nil {
		return s.fail(opChargeDate, token, err, errChargeDate)
	}

	return s.applySubscription(opChargeDate, token, sub)
}

// PrecancelSubscription fetches the retention-flow URL. State only records
// the operation status; nothing is cancelled yet.
func (s *SubscriptionStore) PrecancelSubscription(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error) {
	token := s.begin(opPrecancel, true)

	precancel, err := s.subscriptions.Precancel(ctx, subscriptionID)
	if err != nil {
		return nil, s.fail(opPrecancel, token, err, errCancelSubscription)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stale(opPrecancel, token) {
		s.state.Status = StatusSuccess
	}

	return precancel, nil
}

// CancelSubscription flips one subscription inactive. The record stays in
// state so it can be reactivated.
func (s *SubscriptionStore) CancelSubscription(ctx context.Context, subscriptionID string) error {
	token := s.begin(opCancel, true)

	sub, err := s.subscriptions.Cancel(ctx, subscriptionID)
	if err != nil {
		return s.fail(opCancel, token, err, errCancelSubscription)
	}

	return s.applySubscription(opCancel, token, sub)
}

// ReactivateSubscription flips one subscription back to active; the backend
// processes the next order immediately.
func (s *SubscriptionStore) ReactivateSubscription(ctx context.Context, subscriptionID string) error {
	token := s.begin(opReactivate, true)

	sub, err := s.subscriptions.Reactivate(ctx, subscriptionID)
	if err != nil {
		return s.fail(opReactivate, token, err, errReactivateSubscription)
	}

	return s.applySubscription(opReactivate, token, sub)
}

func (s *SubscriptionStore) applySubscription(op string, token uint64, sub *entity.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(op, token) {
		return nil
	}
	s.state.Subscriptions[sub.CustomerChild] = *sub
	s.state.Status = StatusSuccess

	return nil
}
