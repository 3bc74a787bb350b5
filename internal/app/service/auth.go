package service

import (
	"context"
	"errors"
	"strings"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate проверяет логин и пароль и открывает сессию.
// Любая ошибка хранилища пишется в лог и считается неуспешным входом.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*Session, error) {
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		user *ds.User
		err  error
	)
	if s.passwordMode == config.PasswordBcrypt {
		user, err = s.findHashed(ctx, login, password)
	} else {
		user, err = s.store.FindUserByCredentials(ctx, login, password)
	}
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.WithField("login", login).Errorf("authentication failed: %v", err)
		}
		return nil, ErrInvalidCredentials
	}

	session := NewSession(*user)
	log.Infof("user %d logged in as %s", session.UserID, session.Policy.Label)
	return &session, nil
}

func (s *Service) findHashed(ctx context.Context, login, password string) (*ds.User, error) {
	user, err := s.store.FindUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	hash := strings.TrimSpace(user.Password)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, repository.ErrNotFound
	}
	return user, nil
}
