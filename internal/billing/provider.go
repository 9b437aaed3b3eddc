// AngelaMos | 2026
// provider.go

package billing

import (
	"context"
)

// Provider abstracts the payment backend. The production implementation
// talks to Stripe; tests substitute a fake.
type Provider interface {
	// CreateCustomer registers the user with the payment provider and
	// returns the provider's customer reference.
	CreateCustomer(ctx context.Context, email, userID string) (string, error)

	// CreateCheckoutSession opens a subscription checkout for the customer
	// and returns the hosted page URL.
	CreateCheckoutSession(ctx context.Context, customerID string) (string, error)

	// CreatePortalSession opens the self-service billing portal for the
	// customer and returns its URL.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)

	// HasActiveSubscription reports whether the customer currently holds an
	// active subscription.
	HasActiveSubscription(ctx context.Context, customerID string) (bool, error)
}
