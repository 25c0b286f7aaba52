package utils_test

import (
	"os"
	"testing"

	"github.com/steveiliop56/tinyoauth/internal/utils"

	"gotest.tools/v3/assert"
)

func TestGetUsers(t *testing.T) {
	// Setup
	file, err := os.Create("/tmp/tinyoauth_users_test.txt")
	assert.NilError(t, err)

	_, err = file.WriteString("      1:user1:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G        \n         2:user2:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G:user2@example.com                    ") // Spacing is on purpose
	assert.NilError(t, err)

	err = file.Close()
	assert.NilError(t, err)
	defer os.Remove("/tmp/tinyoauth_users_test.txt")

	// Test file
	users, err := utils.GetUsers([]string{}, "/tmp/tinyoauth_users_test.txt")

	assert.NilError(t, err)

	assert.Equal(t, 2, len(users))

	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "user1", users[0].Username)
	assert.Equal(t, "$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G", users[0].Password)
	assert.Equal(t, "", users[0].Email)
	assert.Equal(t, int64(2), users[1].ID)
	assert.Equal(t, "user2@example.com", users[1].Email)

	// Test config
	users, err = utils.GetUsers([]string{"3:user3:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G", "4:user4:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G"}, "")

	assert.NilError(t, err)

	assert.Equal(t, 2, len(users))

	assert.Equal(t, "user3", users[0].Username)
	assert.Equal(t, "user4", users[1].Username)

	// Test both
	users, err = utils.GetUsers([]string{"5:user5:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G"}, "/tmp/tinyoauth_users_test.txt")

	assert.NilError(t, err)

	assert.Equal(t, 3, len(users))

	assert.Equal(t, "user5", users[0].Username)
	assert.Equal(t, "user1", users[1].Username)
	assert.Equal(t, "user2", users[2].Username)

	// Test duplicate ids
	_, err = utils.GetUsers([]string{"1:user5:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G"}, "/tmp/tinyoauth_users_test.txt")
	assert.ErrorContains(t, err, "duplicate user id 1")

	// Test none
	users, err = utils.GetUsers([]string{}, "")

	assert.NilError(t, err)

	assert.Equal(t, 0, len(users))

	// Test non-existing file
	_, err = utils.GetUsers([]string{}, "/tmp/non_existing_file")
	assert.ErrorContains(t, err, "no such file or directory")
}

func TestParseUser(t *testing.T) {
	// Normal case
	user, err := utils.ParseUser("1:user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.NilError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "user", user.Username)
	assert.Equal(t, "$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G", user.Password)

	// With email
	user, err = utils.ParseUser("7:user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G:user@example.com")
	assert.NilError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "user@example.com", user.Email)

	// Escaped dollar signs
	user, err = utils.ParseUser("1:user:$$2a$$10$$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.NilError(t, err)
	assert.Equal(t, "$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G", user.Password)

	// Missing id
	_, err = utils.ParseUser("user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.ErrorContains(t, err, "invalid user format")

	// Non numeric id
	_, err = utils.ParseUser("abc:user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.ErrorContains(t, err, "invalid user id")

	// Zero id
	_, err = utils.ParseUser("0:user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.ErrorContains(t, err, "invalid user id")

	// Too many parts
	_, err = utils.ParseUser("1:user:$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G:user@example.com:extra")
	assert.ErrorContains(t, err, "invalid user format")

	// Empty part
	_, err = utils.ParseUser("1: :$2a$10$Mz5xhkfSJUtPWkzCd/TdaePh9CaXc5QcGII5wIMPLSR46eTwma30G")
	assert.ErrorContains(t, err, "invalid user format")
}
