package account

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/domain/quota"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
	"github.com/janhq/translate-mock/pkg/telemetry"
)

var ErrInvalidCredential = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "Invalid authentication key")

// Registry resolves credentials to accounts, creating them on first use.
type Registry struct {
	accounts  *store.ExpiringStore[string, *Account]
	defaults  Defaults
	clock     func() time.Time
	sanitizer *telemetry.Sanitizer
	log       zerolog.Logger
}

// NewRegistry creates an account registry backed by an expiring store.
func NewRegistry(defaults Defaults, opts store.Options, sanitizer *telemetry.Sanitizer, log zerolog.Logger) *Registry {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		accounts:  store.NewExpiringStore[string, *Account]("accounts", opts, nil, log),
		defaults:  defaults,
		clock:     clock,
		sanitizer: sanitizer,
		log:       log.With().Str("component", "account-registry").Logger(),
	}
}

// Resolve returns the account for credential. Unknown credentials get a new
// account provisioned from p; empty and reserved credentials are refused.
func (r *Registry) Resolve(ctx context.Context, credential string, p Provisioning) (*Account, error) {
	if credential == "" || credential == InvalidCredential {
		return nil, ErrInvalidCredential
	}

	acct, created := r.accounts.Acquire(credential, func() *Account {
		now := r.clock()
		a := &Account{
			Credential: credential,
			CreatedAt:  now,
			Usage:      quota.NewLedger(r.defaults.allowances(p)...),
		}
		if a.Usage.Enabled(quota.ClassCharacter) {
			period := quota.BillingPeriod(now, r.defaults.BillingPeriodOffset)
			a.Billing = &period
		}
		return a
	})
	if created {
		r.log.Info().
			Str("account", r.sanitizer.SanitizeCredential(credential)).
			Interface("usage", acct.Usage.Snapshot()).
			Msg("account created")
	}
	return acct, nil
}

// Len returns the number of live accounts.
func (r *Registry) Len() int {
	return r.accounts.Len()
}

// Sweep evicts accounts idle past their lifetime as of now.
func (r *Registry) Sweep(now time.Time) int {
	return r.accounts.Sweep(now)
}

// Start begins expiring idle accounts.
func (r *Registry) Start(ctx context.Context) {
	r.accounts.Start(ctx)
}

// Stop halts expiry.
func (r *Registry) Stop() {
	r.accounts.Stop()
}
