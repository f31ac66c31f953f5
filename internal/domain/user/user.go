package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phonenumber"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	FullName    string `json:"fullname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phonenumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is a merge patch: nil means "leave the stored value
// alone". Only the four mutable profile fields can be patched; identity and
// password stay out of this path.
type UpdateUserRequest struct {
	FullName    *string `json:"fullname"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phonenumber"`
	Address     *string `json:"address"`
}

// Empty reports whether the patch carries nothing to apply. Pointers to empty
// strings count as absent, matching the "all fields empty" rejection rule.
func (r UpdateUserRequest) Empty() bool {
	for _, p := range []*string{r.FullName, r.Email, r.PhoneNumber, r.Address} {
		if p != nil && *p != "" {
			return false
		}
	}

	return true
}

// ValidPhone reports whether the patched phone number, when present, is
// exactly 10 digits.
func (r UpdateUserRequest) ValidPhone() bool {
	if r.PhoneNumber == nil || *r.PhoneNumber == "" {
		return true
	}

	phone := *r.PhoneNumber

	if len(phone) != 10 {
		return false
	}

	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// Apply overlays the supplied fields onto u.
func (r UpdateUserRequest) Apply(u *User) {
	if r.FullName != nil && *r.FullName != "" {
		u.FullName = *r.FullName
	}
	if r.Email != nil && *r.Email != "" {
		u.Email = *r.Email
	}
	if r.PhoneNumber != nil && *r.PhoneNumber != "" {
		u.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil && *r.Address != "" {
		u.Address = *r.Address
	}
}
