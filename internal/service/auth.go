package service

import (
	"context"
	"database/sql"
	"errors"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository"
	"pgnest-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	adminRepo  repository.AdminRepository
	memberRepo repository.MemberRepository
	tokens     security.TokenManager
}

func NewAuthService(adminRepo repository.AdminRepository, memberRepo repository.MemberRepository, tokens security.TokenManager) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		memberRepo: memberRepo,
		tokens:     tokens,
	}
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAdminToken(admin.ID, admin.Email, string(admin.PGType))
	if err != nil {
		return "", nil, err
	}

	logger.Info("Admin logged in", "admin_id", admin.ID, "pg_type", admin.PGType)
	return token, admin, nil
}

func (s *authService) MemberLogin(ctx context.Context, phone, password string) (string, *domain.Member, error) {
	member, err := s.memberRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !member.IsActive {
		return "", nil, ErrInactiveMember
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateMemberToken(member.ID, member.Phone, member.PGID)
	if err != nil {
		return "", nil, err
	}

	logger.Info("Member logged in", "member_id", member.ID, "pg_id", member.PGID)
	return token, member, nil
}

// HashPassword is the shared bcrypt helper for registration flows.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
