package utils

import (
	"errors"
	"net/url"
	"strings"

	"github.com/steveiliop56/tinyoauth/internal/config"

	"github.com/gin-gonic/gin"
)

func ParseFileToLine(content string) string {
	lines := strings.Split(content, "\n")
	users := make([]string, 0)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		users = append(users, strings.TrimSpace(line))
	}

	return strings.Join(users, ",")
}

func GetContext(c *gin.Context) (config.UserContext, error) {
	userContextValue, exists := c.Get("context")

	if !exists {
		return config.UserContext{}, errors.New("no user context in request")
	}

	userContext, ok := userContextValue.(*config.UserContext)

	if !ok {
		return config.UserContext{}, errors.New("invalid user context in request")
	}

	return *userContext, nil
}

// IsAbsoluteURI reports whether uri has both a scheme and a host.
func IsAbsoluteURI(uri string) bool {
	if strings.TrimSpace(uri) != uri || uri == "" {
		return false
	}

	parsed, err := url.Parse(uri)

	if err != nil {
		return false
	}

	return parsed.IsAbs() && parsed.Host != ""
}
