package credential

import (
	"Dishcovery-Backend/internal/utils"
	"errors"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type (
	Hasher interface {
		Hash(password string) (string, error)
		Verify(hashed string, password string) (bool, error)
	}

	bcryptHasher struct {
		cost int
	}
)

// NewHasher returns a bcrypt hasher. Costs outside bcrypt's accepted range
// fall back to bcrypt.DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func NewHasherFromConfig() Hasher {
	cost, _ := strconv.Atoi(utils.GetConfig("BCRYPT_COST"))
	return NewHasher(cost)
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashed. A mismatch is not an error.
func (h *bcryptHasher) Verify(hashed string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
