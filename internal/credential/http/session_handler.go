package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	"github.com/allisson/hawkpair/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/hawkpair/internal/credential/usecase"
	apperrors "github.com/allisson/hawkpair/internal/errors"
	"github.com/allisson/hawkpair/internal/httputil"
	customValidation "github.com/allisson/hawkpair/internal/validation"
)

// Response headers that carry the issued credential to the client.
const (
	HeaderToken       = "X-Token"
	HeaderCurrentUser = "X-Current-User"
)

// SessionHandler handles login, logout and the current-user endpoint.
type SessionHandler struct {
	credentialUseCase credentialUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	credentialUseCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// LoginHandler authenticates an account and issues a credential pair.
// POST /v1/users/login - No authentication required.
// The pair is returned in X-Token as "<credential id> <secret key>" and the caller's
// profile id in X-Current-User.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.credentialUseCase.Login(c.Request.Context(), &credentialDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, time.Now().UTC())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header(HeaderToken, output.CredentialID+" "+output.SecretKey)
	c.Header(HeaderCurrentUser, output.ProfileID.String())
	c.JSON(http.StatusOK, httputil.SuccessResponse{Success: true})
}

// LogoutHandler revokes the credential used to sign the request.
// GET /v1/users/logout - Requires authentication. Already revoked credentials still report
// success; only store failures produce an error.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	assertion, ok := GetAssertion(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.credentialUseCase.Revoke(c.Request.Context(), assertion.SecretKey, assertion.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.SuccessResponse{Success: true})
}

// MeHandler describes the authenticated caller.
// GET /v1/users/me - Requires authentication.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	assertion, ok := GetAssertion(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAssertionToMeResponse(assertion))
}
