package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAdmin  TokenType = "admin"
	TokenTypeMember TokenType = "member"
)

// Claims defines the standard claims for our application. The two token
// types carry different scopes: admin tokens carry the managed pg_type,
// member tokens carry the member's own id and pg.
type Claims struct {
	SubjectID int32     `json:"subject_id"`
	Email     string    `json:"email,omitempty"`
	Type      TokenType `json:"type"`
	PGType    string    `json:"pg_type,omitempty"` // admin scope
	PGID      int32     `json:"pg_id,omitempty"`   // member scope
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAdminToken(adminID int32, email, pgType string) (string, error)
	GenerateMemberToken(memberID int32, phone string, pgID int32) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenManager struct {
	secret       []byte
	adminExpiry  time.Duration
	memberExpiry time.Duration
}

func NewTokenManager(secret string, adminExpiryMinutes, memberExpiryMinutes int) TokenManager {
	return &tokenManager{
		secret:       []byte(secret),
		adminExpiry:  time.Duration(adminExpiryMinutes) * time.Minute,
		memberExpiry: time.Duration(memberExpiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateAdminToken(adminID int32, email, pgType string) (string, error) {
	claims := Claims{
		SubjectID: adminID,
		Email:     email,
		Type:      TokenTypeAdmin,
		PGType:    pgType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(adminID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.adminExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pgnest-backend",
			Audience:  jwt.ClaimStrings{"admin-api"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) GenerateMemberToken(memberID int32, phone string, pgID int32) (string, error) {
	claims := Claims{
		SubjectID: memberID,
		Email:     phone,
		Type:      TokenTypeMember,
		PGID:      pgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(memberID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.memberExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pgnest-backend",
			Audience:  jwt.ClaimStrings{"member-api"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.SubjectID == 0 && claims.Subject != "" {
			id, _ := strconv.Atoi(claims.Subject)
			claims.SubjectID = int32(id)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
