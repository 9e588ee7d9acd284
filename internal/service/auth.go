package service

import (
	"context"
	"errors"
	"fmt"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/auth"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/notify"
	"goldenspoon-backend/internal/store"

	"github.com/rs/zerolog"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=15"`
}

type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=15"`
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type AuthResult struct {
	Token string
	User  models.UserDetails
}

type AuthService struct {
	users    store.UserRepository
	tokens   TokenIssuer
	notifier notify.Notifier
	log      zerolog.Logger

	clock       clock
	generateOTP func() (string, error)
}

func NewAuthService(users store.UserRepository, tokens TokenIssuer, notifier notify.Notifier, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		notifier:    notifier,
		log:         log,
		generateOTP: auth.GenerateOTP,
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, fmt.Errorf("signup create: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendWelcome(ctx, user.Email, user.Name); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed, user registered anyway")
	}

	return &AuthResult{Token: token, User: user.Details()}, nil
}

func (s *AuthService) Signin(ctx context.Context, in SigninInput) (*AuthResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("signin lookup: %w", err)
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Details()}, nil
}

// ForgotPassword issues a fresh OTP valid for auth.OTPTTL and mails it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	otp, err := s.generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.users.SetOTP(ctx, user.ID, otp, s.clock.now().Add(auth.OTPTTL)); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, user.Email, user.Name, otp); err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("otp email failed")
	}
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	if !user.HasPendingOTP() {
		return apperr.Validation("Invalid Request")
	}
	if *user.OTP != otp {
		return apperr.Validation("Invalid OTP")
	}
	if user.OTPExpires.Before(s.clock.now()) {
		return apperr.Validation("OTP Expired")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	user, err := s.findUser(ctx, in.Email)
	if err != nil {
		return err
	}

	if n := len([]rune(in.NewPassword)); n < 6 || n > 15 {
		return apperr.Validation("Password must be 6-15 chars")
	}
	if !user.HasPendingOTP() || *user.OTP != in.OTP || user.OTPExpires.Before(s.clock.now()) {
		return apperr.Validation("Invalid or Expired OTP")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *AuthService) UserDetails(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("user details: %w", err)
	}
	return user, nil
}

func (s *AuthService) findUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
