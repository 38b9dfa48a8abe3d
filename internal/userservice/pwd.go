package userservice

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

// dummyPassword is compared against when the username is unknown, so both login failures cost one bcrypt run.
var dummyPassword = sync.OnceValue(func() Password {
	hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), passwordCost)
	if err != nil {
		panic(err)
	}

	return Password{hash: hash}
})

func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}

	p.hash = hash

	return nil
}

func (p *Password) compare(pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(pwd))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// outdated reports whether the stored hash was produced with a lower cost than passwordCost.
func (p *Password) outdated() bool {
	cost, err := bcrypt.Cost(p.hash)
	if err != nil {
		return false
	}

	return cost < passwordCost
}
