package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	"github.com/allisson/hawkpair/internal/metrics"
)

const metricsDomain = "credential"

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) Login(
	ctx context.Context,
	input *credentialDomain.LoginInput,
	now time.Time,
) (*credentialDomain.LoginOutput, error) {
	start := time.Now()
	output, err := c.next.Login(ctx, input, now)

	c.record(ctx, "login", start, string(credentialDomain.OutcomeOf(err)))

	return output, err
}

func (c *credentialUseCaseWithMetrics) Issue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Issue(ctx, userID, now)

	c.record(ctx, "issue", start, metrics.StatusOf(err))

	return credential, err
}

// Verify labels the status with the verification outcome rather than success/error.
func (c *credentialUseCaseWithMetrics) Verify(
	ctx context.Context,
	credentialID string,
	now time.Time,
) (*credentialDomain.Assertion, error) {
	start := time.Now()
	assertion, err := c.next.Verify(ctx, credentialID, now)

	c.record(ctx, "verify", start, string(credentialDomain.OutcomeOf(err)))

	return assertion, err
}

func (c *credentialUseCaseWithMetrics) Revoke(ctx context.Context, secretKey string, userID uuid.UUID) error {
	start := time.Now()
	err := c.next.Revoke(ctx, secretKey, userID)

	c.record(ctx, "revoke", start, metrics.StatusOf(err))

	return err
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, status string) {
	metrics.Observe(ctx, c.metrics, metricsDomain, operation, start, status)
}
