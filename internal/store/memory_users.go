// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"brsite/internal/models"
)

// MemoryUsers holds a single bootstrap admin in memory. It keeps the admin
// console reachable when PostgreSQL is down; 2FA enrollment made here is
// lost on restart.
type MemoryUsers struct {
	mu   sync.Mutex
	user models.User
}

// NewMemoryUsers creates the bootstrap admin from configured credentials.
func NewMemoryUsers(email, password string) (*MemoryUsers, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("bootstrap admin: email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	return &MemoryUsers{user: models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}, nil
}

// FindByEmail returns the bootstrap admin if the email matches. Returns nil
// if not found.
func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !strings.EqualFold(m.user.Email, email) {
		return nil, nil
	}
	u := m.user
	return &u, nil
}

// FindByID returns the bootstrap admin if the id matches. Returns nil if
// not found.
func (m *MemoryUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user.ID != id {
		return nil, nil
	}
	u := m.user
	return &u, nil
}

func (m *MemoryUsers) SetTOTPSecret(_ context.Context, userID uuid.UUID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user.ID != userID {
		return fmt.Errorf("set totp secret: user %s not found", userID)
	}
	m.user.TOTPSecret = &secret
	m.user.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryUsers) EnableTOTP(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user.ID != userID {
		return fmt.Errorf("enable totp: user %s not found", userID)
	}
	m.user.TOTPEnabled = true
	m.user.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (m *MemoryUsers) CheckPassword(user *models.User, password string) bool {
	return checkPassword(user, password)
}
