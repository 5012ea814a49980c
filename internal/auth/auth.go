// Package auth implements the credential table, role permissions and JWT
// session tokens. Accounts are immutable configuration injected at
// process start, never ambient globals.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Permission names gating the API surface.
const (
	PermissionAssessment = "employee_assessment"
	PermissionFinancial  = "financial_analysis"
	PermissionDashboard  = "dashboard"
)

// Account is one entry of the credential table.
type Account struct {
	PasswordHash string   `yaml:"password_hash"`
	Role         string   `yaml:"role"`
	Permissions  []string `yaml:"permissions"`
	DisplayName  string   `yaml:"display_name"`
}

// HasPermission reports whether the account carries the permission.
func (a Account) HasPermission(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// DefaultAccounts returns the built-in credential table: an
// administrator, an HR manager and a financial analyst restricted to
// financial analysis.
func DefaultAccounts() map[string]Account {
	return map[string]Account{
		"admin": {
			PasswordHash: "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
			Role:         "admin",
			Permissions:  []string{PermissionAssessment, PermissionFinancial, PermissionDashboard},
			DisplayName:  "Administrator",
		},
		"hr_manager": {
			PasswordHash: "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918",
			Role:         "hr_manager",
			Permissions:  []string{PermissionAssessment, PermissionFinancial, PermissionDashboard},
			DisplayName:  "HR Manager",
		},
		"financial": {
			PasswordHash: "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f",
			Role:         "financial",
			Permissions:  []string{PermissionFinancial},
			DisplayName:  "Financial Analyst",
		},
	}
}

// HashPassword returns the hex SHA-256 digest the credential table
// stores.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Session describes an authenticated user.
type Session struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	DisplayName string   `json:"display_name"`
}

// Service authenticates users against the credential table and manages
// JWT session tokens.
type Service struct {
	accounts  map[string]Account
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService builds an auth service over an immutable account table.
func NewService(accounts map[string]Account, jwtSecret string) *Service {
	return &Service{
		accounts:  accounts,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// Authenticate verifies a username/password pair and returns the session
// on success.
func (s *Service) Authenticate(username, password string) (*Session, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, fmt.Errorf("unknown username")
	}

	hashed := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(account.PasswordHash)) != 1 {
		return nil, fmt.Errorf("invalid password")
	}

	return &Session{
		Username:    username,
		Role:        account.Role,
		Permissions: account.Permissions,
		DisplayName: account.DisplayName,
	}, nil
}

// GenerateToken issues a signed session token for the user.
func (s *Service) GenerateToken(session *Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":         session.Username,
		"role":        session.Role,
		"permissions": session.Permissions,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies a session token and reconstructs the session.
// The account is re-resolved from the credential table so permission
// changes take effect without waiting for token expiry.
func (s *Service) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	username, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("subject not found in token")
	}

	account, ok := s.accounts[username]
	if !ok {
		return nil, fmt.Errorf("account no longer exists")
	}

	return &Session{
		Username:    username,
		Role:        account.Role,
		Permissions: account.Permissions,
		DisplayName: account.DisplayName,
	}, nil
}
