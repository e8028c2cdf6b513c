package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpired(t *testing.T) {
	sess := Session{ExpiredAt: time.Now().Add(time.Hour)}
	assert.False(t, sess.Expired())

	sess.ExpiredAt = time.Now().Add(-time.Second)
	assert.True(t, sess.Expired())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
