package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/middleware"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	users         auth.UserStorage
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users auth.UserStorage, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:             user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		AthleteID:      user.AthleteID,
		CategoryIDs:    user.CategoryIDs,
		CreatedAt:      timestamppb.New(time.Unix(user.CreatedAt, 0)),
	}
}

// canRegister decides who may create which account. Admins create any
// account; managers create athlete accounts of their organization.
func canRegister(sess auth.Session, signedIn bool, msg *api.RegisterRequest) bool {
	if !signedIn {
		return false
	}
	switch sess.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return msg.Role == models.RoleAthlete && msg.OrganizationID == sess.OrganizationID
	default:
		return false
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email, "role", req.Msg.Role)

	if req.Msg.Email == "" || req.Msg.DisplayName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}
	if req.Msg.Role == "" {
		req.Msg.Role = models.RoleAthlete
	}
	if req.Msg.Role == models.RoleAthlete && req.Msg.AthleteID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("athlete accounts need athlete_id"))
	}

	sess, signedIn := middleware.GetSession(ctx)
	if !canRegister(sess, signedIn, req.Msg) {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}

	user, err := s.authenticator.Register(ctx, auth.Registration{
		Email:          req.Msg.Email,
		DisplayName:    req.Msg.DisplayName,
		Credential:     req.Msg.Password,
		Role:           req.Msg.Role,
		OrganizationID: req.Msg.OrganizationID,
		AthleteID:      req.Msg.AthleteID,
		CategoryIDs:    req.Msg.CategoryIDs,
	})
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidRole):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		default:
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("user no longer exists"))
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}
