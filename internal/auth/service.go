// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renankelm10/cursera/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// UserInfo is the auth-facing view of a user row.
type UserInfo struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	IsAdmin       bool
	HasPaidAccess bool
	CreatedAt     time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	redis        *redis.Client
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	redisClient *redis.Client,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		redis:        redisClient,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

// VerifyCredential validates a bearer token and returns the user id it is
// bound to. It satisfies the identity resolver's verifier contract: callers
// treat any error as "anonymous", so failure modes here never surface to
// clients directly.
func (s *Service) VerifyCredential(
	ctx context.Context,
	credential string,
) (string, error) {
	claims, err := s.jwt.VerifySessionToken(credential)
	if err != nil {
		return "", err
	}

	revoked, err := s.isTokenRevoked(ctx, claims.TokenID)
	if err != nil {
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return "", fmt.Errorf("verify credential: %w", core.ErrTokenRevoked)
	}

	return claims.UserID, nil
}

// Logout revokes the presented token by blacklisting its id in redis until
// the token's natural expiry.
func (s *Service) Logout(ctx context.Context, credential string) error {
	claims, err := s.jwt.VerifySessionToken(credential)
	if err != nil {
		// Already invalid or expired; nothing to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	key := "blacklist:" + claims.TokenID
	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) isTokenRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	key := "blacklist:" + tokenID

	exists, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	issued, err := s.jwt.CreateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	return &AuthResponse{
		User: toUserResponse(user),
		Token: TokenResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int(time.Until(issued.ExpiresAt) / time.Second),
			ExpiresAt:   issued.ExpiresAt,
		},
	}, nil
}

func toUserResponse(user *UserInfo) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		HasPaidAccess: user.HasPaidAccess,
		CreatedAt:     user.CreatedAt,
	}
}
