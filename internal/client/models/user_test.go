package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "number", input: `42`, want: "42"},
		{name: "string", input: `"u-7"`, want: "u-7"},
		{name: "null", input: `null`, want: ""},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestUser_DecodesBackendRecord(t *testing.T) {
	raw := `{
		"id": 7,
		"email": "ana@fusion.app",
		"full_name": "Ana Souza",
		"user_type": "student",
		"condominium_id": 3,
		"block": "B",
		"apartment": "204",
		"unknown_field": true
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, ID("7"), u.ID)
	assert.Equal(t, "Ana Souza", u.FullName)
	assert.Equal(t, UserTypeStudent, u.UserType)
	require.NotNil(t, u.CondominiumID)
	assert.Equal(t, int64(3), *u.CondominiumID)
	assert.Equal(t, "204", u.Apartment)
}

func TestUserForm_NullableFieldsEncodeAsNull(t *testing.T) {
	b, err := json.Marshal(UserForm{FullName: "Ana", UserType: UserTypeAdmin})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Nil(t, m["date_of_birth"])
	assert.Nil(t, m["condominium_id"])
	assert.Equal(t, "admin", m["user_type"])
}
