package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/steveiliop56/tinyoauth/internal/config"
)

func ParseUsers(users []string) ([]config.User, error) {
	var usersParsed []config.User
	seen := make(map[int64]bool)

	for _, user := range users {
		if strings.TrimSpace(user) == "" {
			continue
		}
		parsed, err := ParseUser(strings.TrimSpace(user))
		if err != nil {
			return []config.User{}, err
		}
		if seen[parsed.ID] {
			return []config.User{}, fmt.Errorf("duplicate user id %d", parsed.ID)
		}
		seen[parsed.ID] = true
		usersParsed = append(usersParsed, parsed)
	}

	return usersParsed, nil
}

func GetUsers(conf []string, file string) ([]config.User, error) {
	var users []string

	if len(conf) == 0 && file == "" {
		return []config.User{}, nil
	}

	users = append(users, conf...)

	if file != "" {
		contents, err := ReadFile(file)
		if err != nil {
			return []config.User{}, err
		}
		line := ParseFileToLine(contents)
		if line != "" {
			users = append(users, strings.Split(line, ",")...)
		}
	}

	return ParseUsers(users)
}

// ParseUser parses id:username:bcrypt_hash[:email], $$ is unescaped to $ first.
func ParseUser(user string) (config.User, error) {
	if strings.Contains(user, "$$") {
		user = strings.ReplaceAll(user, "$$", "$")
	}

	userSplit := strings.Split(user, ":")

	if len(userSplit) < 3 || len(userSplit) > 4 {
		return config.User{}, errors.New("invalid user format")
	}

	for _, userPart := range userSplit {
		if strings.TrimSpace(userPart) == "" {
			return config.User{}, errors.New("invalid user format")
		}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(userSplit[0]), 10, 64)

	if err != nil || id < 1 {
		return config.User{}, errors.New("invalid user id")
	}

	parsed := config.User{
		ID:       id,
		Username: strings.TrimSpace(userSplit[1]),
		Password: strings.TrimSpace(userSplit[2]),
	}

	if len(userSplit) == 4 {
		parsed.Email = strings.TrimSpace(userSplit[3])
	}

	return parsed, nil
}
