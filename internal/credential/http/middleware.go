package http

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	credentialUseCase "github.com/allisson/hawkpair/internal/credential/usecase"
	apperrors "github.com/allisson/hawkpair/internal/errors"
	"github.com/allisson/hawkpair/internal/httputil"
)

// AuthenticationMiddleware authenticates requests signed with a Hawk Authorization header.
//
// The middleware parses the header, verifies the credential id (which renews it), hands the
// assertion to the MACVerifier and stores the assertion in the request context for GetAssertion.
//
// Error handling:
//   - Missing or malformed header → 401 "Unknown credentials"
//   - Unknown, inactive or expired credential → 401 with the verifier message
//   - MAC rejected → 401 "Authentication is required"
//   - Store or account lookup failure → 500
func AuthenticationMiddleware(
	credentialUseCase credentialUseCase.CredentialUseCase,
	macVerifier MACVerifier,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := ParseHawkHeader(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed", slog.String("reason", err.Error()))
			httputil.HandleErrorGin(c, credentialDomain.ErrUnknownCredentials, logger)
			c.Abort()
			return
		}

		assertion, err := credentialUseCase.Verify(c.Request.Context(), header.ID, time.Now().UTC())
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if err := macVerifier.VerifyMAC(c.Request, header, assertion); err != nil {
			logger.Debug("authentication failed: mac rejected",
				slog.String("user_id", assertion.UserID.String()))
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				err = apperrors.Wrap(apperrors.ErrUnauthorized, err.Error())
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithAssertion(c.Request.Context(), assertion))

		logger.Debug("authentication successful",
			slog.String("user_id", assertion.UserID.String()),
			slog.String("username", assertion.Username))

		c.Next()
	}
}
