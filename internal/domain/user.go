package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// bcrypt truncates input beyond 72 bytes, so longer passwords are rejected
// rather than silently weakened.
const (
	minPasswordLength = 12
	maxPasswordLength = 72
)

// User represents a registered learner. LearningBCP47 is the language being
// practiced; NativeBCP47 is the language definitions and explanations are
// written in by default.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, held only until hashing
	HashedPassword string    `json:"-"` // never exposed in JSON
	LearningBCP47  string    `json:"learning_bcp47"`
	NativeBCP47    string    `json:"native_bcp47"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email, password, and language
// pair. It generates a new UUID for the user ID and sets the
// creation/update timestamps. Returns an error if validation fails.
//
// NOTE: the plaintext password is kept on the struct; the caller is
// responsible for hashing it before storage.
func NewUser(email, password, learningBCP47, nativeBCP47 string) (*User, error) {
	user := &User{
		ID:            uuid.New(),
		Email:         email,
		Password:      password,
		LearningBCP47: learningBCP47,
		NativeBCP47:   nativeBCP47,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < minPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > maxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	if _, err := ParseLanguage(u.LearningBCP47); err != nil {
		return err
	}
	if _, err := ParseLanguage(u.NativeBCP47); err != nil {
		return err
	}

	return nil
}

// NativeLanguage returns the user's native language.
func (u *User) NativeLanguage() (Language, error) {
	return ParseLanguage(u.NativeBCP47)
}

// LearningLanguage returns the language the user is practicing.
func (u *User) LearningLanguage() (Language, error) {
	return ParseLanguage(u.LearningBCP47)
}

// validEmailFormat performs a structural check: one '@' with a dotted,
// non-trivial domain. Deliverability is not our problem here.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.IndexByte(domain, '@') != -1 {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
