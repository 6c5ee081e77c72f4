package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	bookRepo "bookswap-backend/internal/domains/book/repository"
	swapRepo "bookswap-backend/internal/domains/swap/repository"
	"bookswap-backend/internal/domains/user"
	"bookswap-backend/pkg/jwt"
)

type userService struct {
	repo       user.Repository
	books      bookRepo.Repository
	swaps      swapRepo.Repository
	jwtManager *jwt.Manager
}

func NewUserService(
	repo user.Repository,
	books bookRepo.Repository,
	swaps swapRepo.Repository,
	jwtManager *jwt.Manager,
) user.Service {
	return &userService{
		repo:       repo,
		books:      books,
		swaps:      swaps,
		jwtManager: jwtManager,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	exists, err = s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, user.ErrUsernameAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Points:       0,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.buildLoginResponse(u)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildLoginResponse(u)
}

func (s *userService) buildLoginResponse(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u.ToDTO(),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.ProfileResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildProfile(ctx, u)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return nil, user.ErrEmailAlreadyExists
		}
		u.Email = *req.Email
	}

	if req.Password != nil {
		if req.OldPassword == nil {
			return nil, user.ErrIncorrectOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*req.OldPassword)); err != nil {
			return nil, user.ErrIncorrectOldPassword
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.buildProfile(ctx, u)
}

// buildProfile computes the derived counters from the live ledgers.
func (s *userService) buildProfile(ctx context.Context, u *user.User) (*user.ProfileResponse, error) {
	listed, err := s.books.CountByOwner(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count listed books: %w", err)
	}

	received, err := s.swaps.CountCompletedByReceiver(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count received books: %w", err)
	}

	return &user.ProfileResponse{
		UserDTO:       u.ToDTO(),
		BooksListed:   listed,
		BooksReceived: received,
	}, nil
}
