package service

import (
	"fmt"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"golang.org/x/crypto/bcrypt"
)

type IdentityServiceConfig struct {
	Users []config.User
}

// IdentityService resolves the configured static users.
type IdentityService struct {
	config     IdentityServiceConfig
	byID       map[int64]config.User
	byUsername map[string]config.User
}

func NewIdentityService(config IdentityServiceConfig) *IdentityService {
	return &IdentityService{
		config: config,
	}
}

func (identity *IdentityService) Init() error {
	identity.byID = make(map[int64]config.User, len(identity.config.Users))
	identity.byUsername = make(map[string]config.User, len(identity.config.Users))

	for _, user := range identity.config.Users {
		if _, exists := identity.byID[user.ID]; exists {
			return fmt.Errorf("duplicate user id %d", user.ID)
		}
		if _, exists := identity.byUsername[user.Username]; exists {
			return fmt.Errorf("duplicate username %s", user.Username)
		}
		identity.byID[user.ID] = user
		identity.byUsername[user.Username] = user
	}

	tlog.App.Debug().Int("users", len(identity.byID)).Msg("Identity service initialized")
	return nil
}

func (identity *IdentityService) UsersConfigured() bool {
	return len(identity.byID) > 0
}

func (identity *IdentityService) GetUserByID(id int64) (config.User, bool) {
	user, ok := identity.byID[id]
	return user, ok
}

func (identity *IdentityService) GetUserByUsername(username string) (config.User, bool) {
	user, ok := identity.byUsername[username]
	return user, ok
}

// VerifyUser checks a username and plaintext password against the stored bcrypt hash.
func (identity *IdentityService) VerifyUser(username, password string) (config.User, bool) {
	user, ok := identity.GetUserByUsername(username)

	if !ok {
		return config.User{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return config.User{}, false
	}

	return user, true
}
