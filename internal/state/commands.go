package state

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// Commands bind the store to the services. Each command performs the
// side-effecting call first and only then feeds the outcome into the store's
// reducers, so reducers stay pure and the call's error is both returned to
// the caller and recorded on the slice.
type Commands struct {
	store    *Store
	quotes   *usecase.QuoteService
	policies *usecase.PolicyService
	claims   *usecase.ClaimService
	payments *usecase.PaymentService
}

// NewCommands constructs a Commands set over store.
func NewCommands(store *Store, quotes *usecase.QuoteService, policies *usecase.PolicyService, claims *usecase.ClaimService, payments *usecase.PaymentService) *Commands {
	return &Commands{
		store:    store,
		quotes:   quotes,
		policies: policies,
		claims:   claims,
		payments: payments,
	}
}

// Store returns the underlying store for reads.
func (c *Commands) Store() *Store {
	return c.store
}

// FetchQuotes loads the user's quotes, tracking loading and error state.
func (c *Commands) FetchQuotes(ctx context.Context, userID string) error {
	c.store.apply(func() { c.store.quotes = reduceFetchStarted(c.store.quotes) })

	items, err := c.quotes.ListByUser(ctx, userID)
	if err != nil {
		c.store.apply(func() { c.store.quotes = reduceFetchFailed(c.store.quotes, err) })
		return err
	}
	c.store.apply(func() { c.store.quotes = reduceFetchSucceeded(c.store.quotes, items) })
	return nil
}

// FetchAllQuotes loads every quote; used by staff views.
func (c *Commands) FetchAllQuotes(ctx context.Context) error {
	c.store.apply(func() { c.store.quotes = reduceFetchStarted(c.store.quotes) })

	items, err := c.quotes.List(ctx)
	if err != nil {
		c.store.apply(func() { c.store.quotes = reduceFetchFailed(c.store.quotes, err) })
		return err
	}
	c.store.apply(func() { c.store.quotes = reduceFetchSucceeded(c.store.quotes, items) })
	return nil
}

// FetchPolicies loads the user's policies.
func (c *Commands) FetchPolicies(ctx context.Context, userID string) error {
	c.store.apply(func() { c.store.policies = reduceFetchStarted(c.store.policies) })

	items, err := c.policies.ListByUser(ctx, userID)
	if err != nil {
		c.store.apply(func() { c.store.policies = reduceFetchFailed(c.store.policies, err) })
		return err
	}
	c.store.apply(func() { c.store.policies = reduceFetchSucceeded(c.store.policies, items) })
	return nil
}

// FetchAllPolicies loads every policy; used by staff views.
func (c *Commands) FetchAllPolicies(ctx context.Context) error {
	c.store.apply(func() { c.store.policies = reduceFetchStarted(c.store.policies) })

	items, err := c.policies.List(ctx)
	if err != nil {
		c.store.apply(func() { c.store.policies = reduceFetchFailed(c.store.policies, err) })
		return err
	}
	c.store.apply(func() { c.store.policies = reduceFetchSucceeded(c.store.policies, items) })
	return nil
}

// FetchClaims loads the user's claims.
func (c *Commands) FetchClaims(ctx context.Context, userID string) error {
	c.store.apply(func() { c.store.claims = reduceFetchStarted(c.store.claims) })

	items, err := c.claims.ListByUser(ctx, userID)
	if err != nil {
		c.store.apply(func() { c.store.claims = reduceFetchFailed(c.store.claims, err) })
		return err
	}
	c.store.apply(func() { c.store.claims = reduceFetchSucceeded(c.store.claims, items) })
	return nil
}

// FetchAllClaims loads every claim; used by staff views.
func (c *Commands) FetchAllClaims(ctx context.Context) error {
	c.store.apply(func() { c.store.claims = reduceFetchStarted(c.store.claims) })

	items, err := c.claims.List(ctx)
	if err != nil {
		c.store.apply(func() { c.store.claims = reduceFetchFailed(c.store.claims, err) })
		return err
	}
	c.store.apply(func() { c.store.claims = reduceFetchSucceeded(c.store.claims, items) })
	return nil
}

// FetchPayments loads the user's payments.
func (c *Commands) FetchPayments(ctx context.Context, userID string) error {
	c.store.apply(func() { c.store.payments = reduceFetchStarted(c.store.payments) })

	items, err := c.payments.ListByUser(ctx, userID)
	if err != nil {
		c.store.apply(func() { c.store.payments = reduceFetchFailed(c.store.payments, err) })
		return err
	}
	c.store.apply(func() { c.store.payments = reduceFetchSucceeded(c.store.payments, items) })
	return nil
}

// FetchAllPayments loads every payment; used by staff views.
func (c *Commands) FetchAllPayments(ctx context.Context) error {
	c.store.apply(func() { c.store.payments = reduceFetchStarted(c.store.payments) })

	items, err := c.payments.List(ctx)
	if err != nil {
		c.store.apply(func() { c.store.payments = reduceFetchFailed(c.store.payments, err) })
		return err
	}
	c.store.apply(func() { c.store.payments = reduceFetchSucceeded(c.store.payments, items) })
	return nil
}

// SaveQuote persists a new quote and upserts it into the store on success.
func (c *Commands) SaveQuote(ctx context.Context, userID string, req domain.QuoteRequest) (*domain.Quote, error) {
	quote, err := c.quotes.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	c.store.apply(func() {
		c.store.quotes = reduceUpserted(c.store.quotes, *quote, sameQuote)
	})
	return quote, nil
}

// DeleteQuote removes a quote from storage and from the store.
func (c *Commands) DeleteQuote(ctx context.Context, id string) error {
	if err := c.quotes.Delete(ctx, id); err != nil {
		return err
	}
	c.store.apply(func() {
		c.store.quotes = reduceRemoved(c.store.quotes, func(q domain.Quote) bool { return q.ID == id })
	})
	return nil
}

// RenewPolicy renews a policy and upserts the result.
func (c *Commands) RenewPolicy(ctx context.Context, id string) (*domain.Policy, error) {
	policy, err := c.policies.Renew(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.apply(func() {
		c.store.policies = reduceUpserted(c.store.policies, *policy, samePolicy)
	})
	return policy, nil
}

// CancelPolicy cancels a policy and upserts the result.
func (c *Commands) CancelPolicy(ctx context.Context, id string) (*domain.Policy, error) {
	policy, err := c.policies.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.apply(func() {
		c.store.policies = reduceUpserted(c.store.policies, *policy, samePolicy)
	})
	return policy, nil
}

// FileClaim files a claim and upserts the result.
func (c *Commands) FileClaim(ctx context.Context, input usecase.FileClaimInput) (*domain.Claim, error) {
	claim, err := c.claims.File(ctx, input)
	if err != nil {
		return nil, err
	}
	c.store.apply(func() {
		c.store.claims = reduceUpserted(c.store.claims, *claim, sameClaim)
	})
	return claim, nil
}

// MakePayment records a payment and upserts the result.
func (c *Commands) MakePayment(ctx context.Context, input usecase.PaymentInput) (*domain.Payment, error) {
	payment, err := c.payments.MakePayment(ctx, input)
	if err != nil {
		return nil, err
	}
	c.store.apply(func() {
		c.store.payments = reduceUpserted(c.store.payments, *payment, samePayment)
	})
	return payment, nil
}

func sameQuote(a, b domain.Quote) bool     { return a.ID == b.ID }
func samePolicy(a, b domain.Policy) bool   { return a.ID == b.ID }
func sameClaim(a, b domain.Claim) bool     { return a.ID == b.ID }
func samePayment(a, b domain.Payment) bool { return a.ID == b.ID }
