package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	input := service.RegisterInput{Email: "owner@shop.in", Password: "password123", FullName: "Priya"}
	mockAuth.On("Register", mock.Anything, input).Return(&service.RegisterOutput{
		User:   &domain.User{ID: uuid.New(), Email: input.Email},
		Tokens: &service.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "owner@shop.in", "password": "password123", "full_name": "Priya",
	})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)
	mockAuth.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "owner@shop.in", "password": "password123", "full_name": "Priya",
	})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := handler.NewAuthHandler(new(mocks.MockAuthService))

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "owner@shop.in", "password": "short", "full_name": "Priya",
	})

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	tokenPair := &service.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	mockAuth.On("Login", mock.Anything, service.LoginInput{
		Email:    "user@test.com",
		Password: "password123",
	}).Return(tokenPair, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "user@test.com",
		"password": "password123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)
	mockAuth.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "user@test.com", "password": "wrongpassword",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeResponse(t, w).Error.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)
	mockAuth.On("RefreshToken", mock.Anything, "refresh-token").
		Return(&service.TokenPair{AccessToken: "new"}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "refresh-token"})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{})
	h.RefreshToken(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
