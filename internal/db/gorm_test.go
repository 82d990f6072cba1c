package db

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	return gdb
}

func TestOpenSQLiteMigrates(t *testing.T) {
	gdb := newTestDB(t)

	for _, table := range []string{"users", "contents", "tags", "content_tags", "share_links"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	gdb := newTestDB(t)

	require.NoError(t, gdb.Create(&User{Email: "a@x.com", Handle: "alice", Password: "hash"}).Error)

	err := gdb.Create(&User{Email: "a@x.com", Handle: "bob", Password: "hash"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	err = gdb.Create(&User{Email: "b@x.com", Handle: "alice", Password: "hash"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestContentRejectsUnknownType(t *testing.T) {
	gdb := newTestDB(t)

	u := User{Email: "a@x.com", Handle: "alice", Password: "hash"}
	require.NoError(t, gdb.Create(&u).Error)

	err := gdb.Create(&Content{Link: "http://x", Title: "t", Type: "Facebook", UserID: u.ID}).Error
	assert.ErrorIs(t, err, ErrUnknownContentType)

	err = gdb.Create(&Content{Link: "http://x", Title: "t", Type: ContentTypeArticle, UserID: u.ID}).Error
	assert.NoError(t, err)
}

func TestParseContentType(t *testing.T) {
	for _, ct := range contentTypes {
		got, err := ParseContentType(string(ct))
		assert.NoError(t, err)
		assert.Equal(t, ct, got)
	}

	_, err := ParseContentType("article")
	assert.ErrorIs(t, err, ErrUnknownContentType)

	_, err = ParseContentType("")
	assert.ErrorIs(t, err, ErrUnknownContentType)
}
