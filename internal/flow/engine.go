package flow

import (
	"context"
	"log/slog"

	"sprout/internal/domain/entity"
	"sprout/internal/store"

	"go.uber.org/fx"
)

// ResumeNotice is shown when a visitor lands mid-flow without loadable
// account state and is sent back to the first form.
const ResumeNotice = "It looks like you have an application in progress. Fill out the form below and pick up where you left off 😊"

// Resolution is the outcome of asking for a question: the question to
// render, whether the user was redirected away from what they asked for, and
// a one-shot notice to surface when they were.
type Resolution struct {
	Question   Question
	Redirected bool
	Notice     string
}

// Engine evaluates the gating rules against live store state. Progress is
// recomputed from scratch on every navigation rather than cached: deleting a
// child or losing a subscription must retract later questions immediately.
type Engine struct {
	subscriptions *store.SubscriptionStore
	carts         *store.CartStore
	logger        *slog.Logger
}

// Params holds dependencies for the flow engine, injected by Fx.
type Params struct {
	fx.In

	Subscriptions *store.SubscriptionStore
	Carts         *store.CartStore
	Logger        *slog.Logger
}

// NewEngine creates the onboarding flow engine.
func NewEngine(params Params) *Engine {
	return &Engine{
		subscriptions: params.Subscriptions,
		carts:         params.Carts,
		logger:        params.Logger,
	}
}

// Start initializes the stores and determines the first question to render.
// Deep links to any question past the first require loadable account state;
// when it cannot be loaded the visitor is sent to the first form with the
// resume notice.
func (e *Engine) Start(ctx context.Context, requested QuestionID) Resolution {
	question, ok := Lookup(requested)
	if !ok {
		question = DefaultQuestion
	}

	if question.ID == DefaultQuestion.ID {
		return Resolution{Question: question}
	}

	if !e.initStores(ctx) {
		return Resolution{
			Question:   DefaultQuestion,
			Redirected: true,
			Notice:     ResumeNotice,
		}
	}

	return Resolution{Question: question}
}

func (e *Engine) initStores(ctx context.Context) bool {
	if err := e.subscriptions.InitStore(ctx); err != nil {
		return false
	}
	customerID := e.subscriptions.Snapshot().Customer.ID
	if customerID == "" {
		return false
	}
	if err := e.carts.InitStore(ctx, customerID); err != nil {
		return false
	}

	return true
}

// Resolve gates one navigation. When the user has not earned the requested
// question they are redirected to the frontier, carrying the given notice.
// An unknown id lands on the first form.
func (e *Engine) Resolve(requested QuestionID, notice string) Resolution {
	question, ok := Lookup(requested)
	if !ok {
		e.logger.Debug("unknown question requested", slog.String("question", string(requested)))

		return Resolution{Question: DefaultQuestion, Redirected: true}
	}

	frontier := e.Frontier()
	for _, id := range frontier {
		if id == question.ID {
			return Resolution{Question: question}
		}
	}

	redirect, _ := Lookup(frontier[len(frontier)-1])

	return Resolution{
		Question:   redirect,
		Redirected: true,
		Notice:     notice,
	}
}

// Frontier returns the questions the user has earned, in graph order. The
// last element is the furthest question they may see.
func (e *Engine) Frontier() []QuestionID {
	sub := e.subscriptions.Snapshot()
	carts := e.carts.Snapshot()

	progress := []QuestionID{QuestionAccountInfo}
	if !canSeeHousehold(sub) {
		return progress
	}
	progress = append(progress, QuestionHouseholdInfo)
	if !canSeeChildrenInfo(sub) {
		return progress
	}
	progress = append(progress, QuestionChildrenInfo)
	if !canSeeBundle(sub) {
		return progress
	}
	progress = append(progress, QuestionBundleInfo)
	if !canSeeMealSelection(sub) {
		return progress
	}
	progress = append(progress, QuestionMealSelection)
	if !canSeeAddOns(sub, carts) {
		return progress
	}
	progress = append(progress, QuestionAddOns, QuestionCheckout)

	return progress
}

// StepState reports whether each macro step is reachable from the step bar.
type StepState struct {
	Step    Step
	Enabled bool
}

// StepStates derives step reachability from the customer lifecycle status.
func (e *Engine) StepStates() []StepState {
	customer := e.subscriptions.Snapshot().Customer
	hasAccount := customer.ID != ""
	planSelection := customer.Status == entity.StatusPlanSelection
	checkout := customer.Status == entity.StatusCheckout

	return []StepState{
		{Step: StepMeAndMyKids, Enabled: hasAccount || planSelection || checkout},
		{Step: StepMyFirstBox, Enabled: planSelection || checkout},
		{Step: StepCheckout, Enabled: checkout},
	}
}

func canSeeHousehold(sub store.SubscriptionState) bool {
	return sub.Customer.ID != ""
}

func canSeeChildrenInfo(sub store.SubscriptionState) bool {
	if !canSeeHousehold(sub) || len(sub.Customer.Children) == 0 {
		return false
	}
	for _, child := range sub.Customer.Children {
		if !child.Persisted() {
			return false
		}
	}

	return true
}

func canSeeBundle(sub store.SubscriptionState) bool {
	if !canSeeChildrenInfo(sub) {
		return false
	}
	for _, child := range sub.Customer.Children {
		if child.BirthDate == "" {
			return false
		}
	}

	return true
}

func canSeeMealSelection(sub store.SubscriptionState) bool {
	if !canSeeBundle(sub) {
		return false
	}
	for _, child := range sub.Customer.Children {
		if _, ok := sub.Subscriptions[child.ID]; !ok {
			return false
		}
	}

	return true
}

func canSeeAddOns(sub store.SubscriptionState, carts store.CartState) bool {
	if !canSeeMealSelection(sub) {
		return false
	}
	if len(sub.Customer.Children) < len(carts.Carts) {
		return false
	}
	for _, child := range sub.Customer.Children {
		cart, ok := carts.Carts[child.ID]
		if !ok || len(cart.LineItems) == 0 {
			return false
		}
	}

	return true
}
