package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

// NewUserService wires the user store. mb may be nil, in which case no user.created events are published.
func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, tokens *TokenManager, logger zerolog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		tokens: tokens,
		logger: logger,
	}
}

// CreateUser stores a new account and publishes a user.created event when an email address was given.
func (s *UserService) CreateUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Blogs:    []BlogSummary{},
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	if s.mb != nil && u.Email != "" {
		event := common.UserCreatedEvent{
			UserID:   u.ID,
			Username: u.Username,
			Name:     u.Name,
			Email:    u.Email,
		}

		// the account exists at this point, a lost welcome mail is not worth failing the request
		err = common.PublishJSON(ctx, s.mb, event, common.UserCreatedKey, common.UserExchange)
		if err != nil {
			s.logger.Error().Err(err).Int("user_id", u.ID).Msg("could not publish user.created event")
		}
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed bearer token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResponse, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			dummy := dummyPassword()
			_, _ = dummy.compare(password)
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	if user.Password.outdated() {
		if err := user.Password.set(password); err != nil {
			return nil, err
		}

		// a concurrent login already rehashed it
		err := s.m.updateUserPassword(ctx, user.Password, user.ID, user.Version)
		if err != nil && !errors.Is(err, common.ErrEditConflict) {
			return nil, err
		}
	}

	token, expiry, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiry,
		Username:  user.Username,
		Name:      user.Name,
	}, nil
}

// GetUserByID returns the user without the password hash or owned blogs.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyUser(id)
	if u, ok := common.Lookup[User](s.c, key); ok {
		return &u, nil
	}

	u, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, *u)

	return u, nil
}

// GetUserByToken resolves a bearer token to the user it was issued for.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrInvalidToken, id)
		default:
			return nil, err
		}
	}

	return u, nil
}

// GetUsers lists all users with their blogs.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
