package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shearbook/models"
	"shearbook/utils"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// the response does not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

func (svc *DefaultShopService) authExpiry() time.Duration {
	if svc.AuthTokenExpiry > 0 {
		return svc.AuthTokenExpiry
	}
	return 24 * time.Hour
}

// RegisterOwner creates an owner account and returns a signed auth token.
func (svc *DefaultShopService) RegisterOwner(ctx context.Context, name, email, password string) (*models.Owner, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	owner := &models.Owner{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := svc.Repo.CreateOwner(ctx, owner); err != nil {
		return nil, "", fmt.Errorf("failed to create owner: %w", err)
	}

	token, err := svc.issueToken(ctx, owner)
	if err != nil {
		return nil, "", err
	}
	return owner, token, nil
}

// AuthenticateOwner verifies credentials and returns a fresh auth token.
func (svc *DefaultShopService) AuthenticateOwner(ctx context.Context, email, password string) (*models.Owner, string, error) {
	owner, err := svc.Repo.GetOwnerByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.issueToken(ctx, owner)
	if err != nil {
		return nil, "", err
	}
	return owner, token, nil
}

// issueToken signs a JWT and records its hash in the auth cache so it
// can be revoked before expiry.
func (svc *DefaultShopService) issueToken(ctx context.Context, owner *models.Owner) (string, error) {
	token, err := utils.GenerateToken(owner.ID, owner.Email, svc.authExpiry())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	if svc.AuthCache != nil {
		key := "authtoken:" + owner.ID
		if err := svc.AuthCache.Set(ctx, key, utils.HashToken(token), svc.authExpiry()).Err(); err != nil {
			return "", fmt.Errorf("failed to cache auth token: %w", err)
		}
	}
	return token, nil
}
