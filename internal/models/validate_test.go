package models

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []FieldError {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
	return vErr.Fields
}

func TestValidateSignup(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&SignupReq{User: "alice", Password: "password1", Email: "a@x.com"}))

	tests := []struct {
		name  string
		req   SignupReq
		field string
		rule  string
	}{
		{"bad email", SignupReq{User: "alice", Password: "password1", Email: "nope"}, "email", "email"},
		{"empty handle", SignupReq{User: "", Password: "password1", Email: "a@x.com"}, "user", "required"},
		{"short password", SignupReq{User: "alice", Password: "1234567", Email: "a@x.com"}, "password", "min"},
		{"long password", SignupReq{User: "alice", Password: strings.Repeat("p", 51), Email: "a@x.com"}, "password", "max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, v.Validate(&tt.req))
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Equal(t, tt.rule, fields[0].Rule)
		})
	}

	t.Run("password bounds are inclusive", func(t *testing.T) {
		assert.NoError(t, v.Validate(&SignupReq{User: "a", Password: strings.Repeat("p", 8), Email: "a@x.com"}))
		assert.NoError(t, v.Validate(&SignupReq{User: "a", Password: strings.Repeat("p", 50), Email: "a@x.com"}))
	})
}

func TestValidateSignin(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&SigninReq{Email: "a@x.com", Password: "password1"}))

	fields := fieldsOf(t, v.Validate(&SigninReq{}))
	assert.Len(t, fields, 2)
}

func TestValidateContent(t *testing.T) {
	v := NewValidator()

	ok := ContentReq{Type: "Article", Link: "http://x", Title: "t"}
	assert.NoError(t, v.Validate(&ok))

	bad := ok
	bad.Type = "Facebook"
	fields := fieldsOf(t, v.Validate(&bad))
	require.Len(t, fields, 1)
	assert.Equal(t, "type", fields[0].Field)
	assert.Equal(t, "contenttype", fields[0].Rule)

	bad.Type = "article"
	fields = fieldsOf(t, v.Validate(&bad))
	require.Len(t, fields, 1)
	assert.Equal(t, "contenttype", fields[0].Rule)

	emptyTag := ok
	emptyTag.Tags = []uint64{1, 0}
	fields = fieldsOf(t, v.Validate(&emptyTag))
	require.Len(t, fields, 1)
	assert.Equal(t, "required", fields[0].Rule)

	assert.NoError(t, v.Validate(&TagReq{Title: "go"}))
	fields = fieldsOf(t, v.Validate(&TagReq{}))
	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].Field)

	noLink := ok
	noLink.Link = ""
	fields = fieldsOf(t, v.Validate(&noLink))
	require.Len(t, fields, 1)
	assert.Equal(t, "link", fields[0].Field)
}
