package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/TheRipper284/mh/internal/repos"
)

var ErrBadCreds = errors.New("invalid username or password")

// AuthService guards the admin panel. There is a single staff account,
// seeded at startup from the configuration.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, username, password string) (*repos.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*repos.User, error) {
	return s.Users.SessionUser(sid)
}
