package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

type Authenticator interface {
	Login(username, password string) (*domain.LoginResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type credential struct {
	passwordHash string
	role         domain.Role
}

// Service autentica os usuários fixos da configuração: o operador e, se houver, o leitor
type Service struct {
	secret      []byte
	tokenTTL    time.Duration
	credentials map[string]credential
	now         func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return newService(cfg, time.Now)
}

func newService(cfg config.Auth, now func() time.Time) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	credentials := make(map[string]credential)
	if cfg.OperatorUser != "" && cfg.OperatorPasswordHash != "" {
		credentials[handleUsername(cfg.OperatorUser)] = credential{passwordHash: cfg.OperatorPasswordHash, role: domain.RoleOperator}
	} else {
		logrus.Warn("AUTH_OPERATOR_USER ou AUTH_OPERATOR_PASSWORD_HASH não configurados, login do operador desabilitado")
	}

	if cfg.ViewerUser != "" && cfg.ViewerPasswordHash != "" {
		credentials[handleUsername(cfg.ViewerUser)] = credential{passwordHash: cfg.ViewerPasswordHash, role: domain.RoleViewer}
	}

	return &Service{
		secret:      []byte(cfg.Secret),
		tokenTTL:    ttl,
		credentials: credentials,
		now:         now,
	}
}

func handleUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Service) Login(username, password string) (*domain.LoginResponse, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	username = handleUsername(username)

	if len(s.credentials) == 0 {
		return nil, NewAuthError(ErrOperatorNotConfigured, apiErrors.ErrInternalServer, "Nenhum usuário configurado")
	}

	cred, ok := s.credentials[username]
	if !ok {
		// Usuário desconhecido recebe a mesma resposta de senha incorreta
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "Usuário ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.passwordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "Usuário ou senha incorretos")
	}

	expiresAt := s.now().Add(s.tokenTTL)
	token, err := s.generateJWT(username, cred.role, expiresAt)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithFields(logrus.Fields{"usuario": username, "perfil": cred.role}).Info("Login realizado")

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *Service) generateJWT(username string, role domain.Role, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if _, known := s.credentials[claims.Username]; !known {
		return nil, NewUserAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, claims.Username, "Usuário não configurado")
	}

	return claims, nil
}
