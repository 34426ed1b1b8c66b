package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fieldErrors returns the field -> message pairs of a *ValidationError.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)

	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestDecodeUser(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		user, err := DecodeUser([]byte(`{"name":"Alex","email":"alex@example.com"}`))
		require.NoError(t, err)
		require.Equal(t, "Alex", user.Name)
		require.True(t, user.IsActive)
		require.Nil(t, user.AvatarURL)
	})

	t.Run("should treat null like absent", func(t *testing.T) {
		user, err := DecodeUser([]byte(`{"name":"Alex","email":"alex@example.com","avatar_url":null,"is_active":null}`))
		require.NoError(t, err)
		require.True(t, user.IsActive)
		require.Nil(t, user.AvatarURL)
	})

	t.Run("should keep explicit values", func(t *testing.T) {
		user, err := DecodeUser([]byte(`{"name":"Alex","email":"alex@example.com","avatar_url":"https://x/a.png","is_active":false}`))
		require.NoError(t, err)
		require.False(t, user.IsActive)
		require.Equal(t, "https://x/a.png", *user.AvatarURL)
	})

	t.Run("should report every failing field", func(t *testing.T) {
		_, err := DecodeUser([]byte(`{"email":"nope","is_active":"yes"}`))
		require.Equal(t, map[string]string{
			"name":      "field required",
			"email":     "value is not a valid email address",
			"is_active": "must be a boolean",
		}, fieldErrors(t, err))
	})
}

func TestDecodeGroup_MembersCount(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr string
	}{
		{name: "absent", value: "", want: 0},
		{name: "null", value: "null", want: 0},
		{name: "integer", value: "3", want: 3},
		{name: "integral float", value: "3.0", want: 3},
		{name: "numeric string", value: `"5"`, want: 5},
		{name: "fractional", value: "3.5", wantErr: "must be an integer"},
		{name: "text", value: `"abc"`, wantErr: "must be an integer"},
		{name: "boolean", value: "true", wantErr: "must be an integer"},
		{name: "just past int64", value: "9223372036854775808", wantErr: "must be an integer"},
		{name: "huge float", value: "1e300", wantErr: "must be an integer"},
		{name: "negative", value: "-2", wantErr: "must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"name":"Walkers","topic":"fitness"`
			if tt.value != "" {
				body += `,"members_count":` + tt.value
			}
			body += `}`

			group, err := DecodeGroup([]byte(body))
			if tt.wantErr != "" {
				require.Equal(t, map[string]string{"members_count": tt.wantErr}, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, group.MembersCount)
		})
	}
}

func TestDecodeGroup_Required(t *testing.T) {
	_, err := DecodeGroup([]byte(`{"name":"","description":7}`))
	require.Equal(t, map[string]string{
		"name":        "field required",
		"topic":       "field required",
		"description": "must be a string",
	}, fieldErrors(t, err))
}

func TestDecodeMessage(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"group_id":"abc","author_name":"Alex","content":"Hi"}`))
	require.NoError(t, err)
	require.Equal(t, "abc", msg.GroupID)
	require.Equal(t, "Alex", msg.AuthorName)
	require.Equal(t, "Hi", msg.Content)

	_, err = DecodeMessage([]byte(`{"author_name":5}`))
	require.Equal(t, map[string]string{
		"group_id":    "field required",
		"author_name": "must be a string",
		"content":     "field required",
	}, fieldErrors(t, err))
}

func TestDecode_BodyNotObject(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"", "field required"},
		{"   ", "field required"},
		{"null", "must be a JSON object"},
		{"[]", "must be a JSON object"},
		{`"text"`, "must be a JSON object"},
		{"{", "must be a JSON object"},
	}
	for _, tt := range tests {
		_, err := DecodeMessage([]byte(tt.body))
		require.Equal(t, map[string]string{"body": tt.want}, fieldErrors(t, err), "body %q", tt.body)
	}
}
