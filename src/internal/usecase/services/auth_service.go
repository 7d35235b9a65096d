package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenType   = "bearer"
	tokenIssuer = "minibanco"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid username or password", commons.ErrUnauthorized)

// AuthSettings carries the signing key and the built-in administrator.
type AuthSettings struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

type AuthService struct {
	store    repo_interfaces.LedgerStore
	settings AuthSettings
	now      func() time.Time
}

func NewAuthService(store repo_interfaces.LedgerStore, settings AuthSettings) *AuthService {
	return &AuthService{store: store, settings: settings, now: time.Now}
}

// WithClock replaces the clock used for token issue and expiry checks.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type tokenClaims struct {
	UserID   int64  `json:"uid"`
	ClientID int64  `json:"cid,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.TokenResponse], error) {
	logger.Info("auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service register validation failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), invalid(err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("auth service register hash password failed", err, nil)
		return failure[models.TokenResponse](err, "register"), err
	}

	identificationType := strings.ToUpper(strings.TrimSpace(req.IdentificationType))
	if identificationType == "" {
		identificationType = domain.DefaultIdentificationType
	}

	var (
		user   domain.User
		client domain.Client
	)
	err = s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		username := strings.TrimSpace(req.Username)
		if _, err := repos.Users.GetByUsername(ctx, username); err == nil {
			return fmt.Errorf("%w: username %s is already registered", commons.ErrInvalidArgument, username)
		} else if !errors.Is(err, commons.ErrNotFound) {
			return err
		}

		identification := strings.TrimSpace(req.IdentificationNumber)
		exists, err := repos.Clients.ExistsByIdentification(ctx, identification)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: identification number is already registered", commons.ErrInvalidArgument)
		}

		user, err = repos.Users.Create(ctx, domain.User{
			Username:     username,
			PasswordHash: hash,
			Role:         domain.RoleClient,
			FullName:     strings.TrimSpace(req.FullName),
			Email:        strings.TrimSpace(req.Email),
			Active:       true,
		})
		if err != nil {
			return err
		}

		client, err = repos.Clients.Create(ctx, domain.Client{
			UserID:               user.ID,
			IdentificationNumber: identification,
			IdentificationType:   identificationType,
			FullName:             user.FullName,
			Email:                user.Email,
			Phone:                strings.TrimSpace(req.Phone),
		})
		return err
	})
	if err != nil {
		logger.Error("auth service register failed", err, logger.Fields{"username": req.Username})
		return failure[models.TokenResponse](err, "register"), err
	}

	response, err := s.issue(domain.Principal{
		UserID:   user.ID,
		ClientID: client.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return failure[models.TokenResponse](err, "register"), err
	}

	logger.Info("auth service register success", logger.Fields{
		"userId":   user.ID,
		"clientId": client.ID,
	})
	return commons.SuccessResponse("registration successful", response), nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.TokenResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), invalid(err)
	}

	var principal domain.Principal
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		user, err := repos.Users.GetByUsername(ctx, strings.TrimSpace(req.Username))
		if errors.Is(err, commons.ErrNotFound) {
			return errInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !user.Active {
			return fmt.Errorf("%w: user %s is inactive", commons.ErrUnauthorized, user.Username)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return errInvalidCredentials
			}
			return fmt.Errorf("verify password: %w", err)
		}

		principal = domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
		if user.Role == domain.RoleClient {
			client, err := repos.Clients.GetByUserID(ctx, user.ID)
			if err != nil {
				return err
			}
			principal.ClientID = client.ID
		}
		return nil
	})
	if err != nil {
		logger.Error("auth service login failed", err, logger.Fields{"username": req.Username})
		return failure[models.TokenResponse](err, "login"), err
	}

	response, err := s.issue(principal)
	if err != nil {
		return failure[models.TokenResponse](err, "login"), err
	}

	logger.Info("auth service login success", logger.Fields{
		"userId": principal.UserID,
		"role":   principal.Role,
	})
	return commons.SuccessResponse("login successful", response), nil
}

// ParseToken verifies a bearer token and returns the caller it names.
func (s *AuthService) ParseToken(token string) (domain.Principal, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.settings.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", commons.ErrUnauthorized, err)
	}
	if claims.ExpiresAt == nil {
		return domain.Principal{}, fmt.Errorf("%w: token has no expiry", commons.ErrUnauthorized)
	}

	role := domain.Role(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleClient {
		return domain.Principal{}, fmt.Errorf("%w: unknown role %q", commons.ErrUnauthorized, claims.Role)
	}

	return domain.Principal{
		UserID:   claims.UserID,
		ClientID: claims.ClientID,
		Username: claims.Subject,
		Role:     role,
	}, nil
}

// EnsureAdmin creates the built-in administrator when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	username := strings.TrimSpace(s.settings.AdminUsername)
	if username == "" || s.settings.AdminPassword == "" {
		return fmt.Errorf("%w: admin credentials are not configured", commons.ErrInvalidArgument)
	}

	created := false
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		_, err := repos.Users.GetByUsername(ctx, username)
		if err == nil || !errors.Is(err, commons.ErrNotFound) {
			return err
		}

		hash, err := hashPassword(s.settings.AdminPassword)
		if err != nil {
			return err
		}
		_, err = repos.Users.Create(ctx, domain.User{
			Username:     username,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			FullName:     "Administrator",
			Email:        s.settings.AdminEmail,
			Active:       true,
		})
		created = err == nil
		return err
	})
	if err != nil {
		logger.Error("auth service ensure admin failed", err, logger.Fields{"username": username})
		return fmt.Errorf("ensure admin: %w", err)
	}

	logger.Info("auth service ensure admin", logger.Fields{
		"username": username,
		"created":  created,
	})
	return nil
}

func (s *AuthService) issue(principal domain.Principal) (models.TokenResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.settings.TokenTTL)

	claims := tokenClaims{
		UserID:   principal.UserID,
		ClientID: principal.ClientID,
		Role:     string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   principal.Username,
			ID:        strconv.FormatInt(now.UnixNano(), 36),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.settings.JWTSecret))
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return models.TokenResponse{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		Username:    principal.Username,
		Role:        string(principal.Role),
		ClientID:    principal.ClientID,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
