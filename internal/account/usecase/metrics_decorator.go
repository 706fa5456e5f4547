package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/metrics"
)

const metricsDomain = "account"

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
// Lookups (Get, GetProfileByUserID) are delegated without recording.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) Register(
	ctx context.Context,
	input *accountDomain.RegisterAccountInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Register(ctx, input)
	metrics.Observe(ctx, a.metrics, metricsDomain, "register", start, metrics.StatusOf(err))
	return account, err
}

func (a *accountUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	username, password string,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Authenticate(ctx, username, password)
	metrics.Observe(ctx, a.metrics, metricsDomain, "authenticate", start, metrics.StatusOf(err))
	return account, err
}

func (a *accountUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	return a.next.Get(ctx, id)
}

func (a *accountUseCaseWithMetrics) GetProfileByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountDomain.Profile, error) {
	return a.next.GetProfileByUserID(ctx, userID)
}

func (a *accountUseCaseWithMetrics) SetPassword(
	ctx context.Context,
	id uuid.UUID,
	currentPassword, newPassword string,
) error {
	start := time.Now()
	err := a.next.SetPassword(ctx, id, currentPassword, newPassword)
	metrics.Observe(ctx, a.metrics, metricsDomain, "set_password", start, metrics.StatusOf(err))
	return err
}

func (a *accountUseCaseWithMetrics) ForceSetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	start := time.Now()
	err := a.next.ForceSetPassword(ctx, id, newPassword)
	metrics.Observe(ctx, a.metrics, metricsDomain, "force_set_password", start, metrics.StatusOf(err))
	return err
}

func (a *accountUseCaseWithMetrics) Activate(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Activate(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "activate", start, metrics.StatusOf(err))
	return err
}

func (a *accountUseCaseWithMetrics) Deactivate(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Deactivate(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "deactivate", start, metrics.StatusOf(err))
	return err
}

func (a *accountUseCaseWithMetrics) Remove(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Remove(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "remove", start, metrics.StatusOf(err))
	return err
}
