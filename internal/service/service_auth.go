package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// defaultUsers are created by SeedDefaultUsers on an empty users table.
var defaultUsers = []struct {
	username string
	password string
	role     models.Role
}{
	{"admin", "admin123", models.RoleAdmin},
	{"dr_bob", "doc123", models.RoleDoctor},
	{"alice", "rec123", models.RoleReceptionist},
}

// authService is the concrete implementation of AuthService.
// It checks credentials against argon2id hashes held by a UserRepository and
// issues JWT tokens carrying the user id and role.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher produces and verifies password hashes.
	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// dummyHash is verified against when the username is unknown so both
	// failure paths cost one hash computation.
	dummyOnce sync.Once
	dummyHash string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and PasswordHasher and populated with token parameters from
// cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Authenticate looks the user up by username and verifies password.
//
// Returns:
//   - ErrInvalidArgument if username or password is empty.
//   - ErrAuthFailure if the user does not exist, the password does not
//     match, or the stored role is unknown.
//   - ErrStorage if the lookup itself fails.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.Actor, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.Actor{}, fmt.Errorf("%w: username and password are required", ErrInvalidArgument)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.burnVerification(password)
		log.Info().Str("func", "*authService.Authenticate").Str("username", username).Msg("unknown username")
		return models.Actor{}, ErrAuthFailure
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by username failed")
		return models.Actor{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Int64("user_id", user.UserID).Msg("stored password hash is unusable")
		return models.Actor{}, ErrAuthFailure
	}
	if !ok {
		log.Info().Str("func", "*authService.Authenticate").Int64("user_id", user.UserID).Msg("wrong password")
		return models.Actor{}, ErrAuthFailure
	}

	if !user.Role.Valid() {
		log.Warn().Str("func", "*authService.Authenticate").Int64("user_id", user.UserID).Msg("user has no known role")
		return models.Actor{}, ErrAuthFailure
	}

	return user.Actor(), nil
}

// RegisterUser hashes password and stores a new user with role.
func (a *authService) RegisterUser(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" || !role.Valid() {
		return models.User{}, fmt.Errorf("%w: username, password and a known role are required", ErrInvalidArgument)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// SeedDefaultUsers creates the default accounts when the users table is
// empty. A username taken by a concurrent seeder is not an error.
func (a *authService) SeedDefaultUsers(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if count > 0 {
		log.Debug().Str("func", "*authService.SeedDefaultUsers").Int64("users", count).Msg("users exist, skipping seed")
		return nil
	}

	for _, u := range defaultUsers {
		_, err = a.RegisterUser(ctx, u.username, u.password, u.role)
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}
		log.Info().Str("func", "*authService.SeedDefaultUsers").Str("username", u.username).Str("role", string(u.role)).Msg("default user created")
	}

	return nil
}

// CreateToken issues a signed JWT for actor.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, actor models.Actor) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, actor, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, unknown role)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// burnVerification runs one verification against a throwaway hash.
func (a *authService) burnVerification(password string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash("not-a-real-password")
	})
	if a.dummyHash != "" {
		_, _ = a.hasher.Verify(password, a.dummyHash)
	}
}
