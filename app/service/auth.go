package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/password"
	"github.com/vibast-solutions/ms-go-club/app/token"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type userRepository interface {
	userFinder
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type tokenMaker interface {
	Generate(userID uint64, role string) (string, time.Time, error)
	Parse(tokenStr string) (*token.Claims, error)
}

type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users    userRepository
	tokens   tokenMaker
	activity activityRecorder
	logger   logrus.FieldLogger
}

func NewAuthService(users userRepository, tokens tokenMaker, activity activityRecorder) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		activity: activity,
		logger:   factory.NewModuleLogger("auth-service"),
	}
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest, ipAddress string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Generate(user.ID, user.Role.String())
	if err != nil {
		return nil, err
	}

	actor := entity.ActorFromUser(user, ipAddress)
	description := fmt.Sprintf("%s logged in", user.Name)
	if _, err := s.activity.Log(ctx, actor, "auth.login", &description, nil); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to write activity log")
	}

	return &LoginResult{User: user, Token: signed, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a session token to its user. The stored role wins over the
// role claim so that role changes take effect before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*entity.User, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
