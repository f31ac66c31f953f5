package user

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds the persisted record from a validated signup
// request. The caller supplies the already-hashed password; a plaintext
// password never reaches this type.
func NewFromCreateRequest(req CreateUserRequest, passwordHash string) User {
	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
