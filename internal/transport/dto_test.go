package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/premium_service/internal/validation"
)

func TestInt64_Unmarshal(t *testing.T) {
	tests := []struct {
		body    string
		want    int64
		wantErr bool
	}{
		{`{"premium": 5}`, 5, false},
		{`{"premium": "7"}`, 7, false},
		{`{"premium": " 8 "}`, 8, false},
		{`{"premium": -2}`, -2, false},
		{`{"premium": 10.0}`, 10, false},
		{`{"premium": 1e1}`, 10, false},
		{`{"premium": 2.5e2}`, 250, false},
		{`{"premium": "10.0"}`, 10, false},
		{`{"premium": "1e1"}`, 10, false},
		{`{"premium": 9223372036854775807}`, 9223372036854775807, false},
		{`{"premium": "1.5"}`, 0, true},
		{`{"premium": 1e19}`, 0, true},
		{`{"premium": ""}`, 0, true},
		{`{"premium": "NaN"}`, 0, true},
		{`{"premium": "Infinity"}`, 0, true},
		{`{"premium": "abc"}`, 0, true},
		{`{"premium": 1.5}`, 0, true},
		{`{"premium": true}`, 0, true},
		{`{"premium": {}}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req UpdateUserRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, validation.Errors{"premium": "Premium must be a number"}, validation.FromDecode(err, &req))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, req.Premium)
			assert.EqualValues(t, tt.want, *req.Premium)
		})
	}
}

func TestUpdateUserRequest_Validation(t *testing.T) {
	v := validation.New()

	var missing UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Equal(t, validation.Errors{"premium": "Premium must be a number"}, v.Validate(&missing))

	var null UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"premium": null}`), &null))
	assert.Equal(t, validation.Errors{"premium": "Premium must be a number"}, v.Validate(&null))

	var negative UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"premium": -1}`), &negative))
	assert.Equal(t, validation.Errors{"premium": "Premium must be greater than or equal to 0"}, v.Validate(&negative))

	var zero UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"premium": 0}`), &zero))
	assert.NoError(t, v.Validate(&zero))
}

func TestLoginRequest_Validation(t *testing.T) {
	v := validation.New()

	var req LoginRequest
	require.NoError(t, json.Unmarshal([]byte(`{"password": "ab"}`), &req))
	assert.Equal(t, validation.Errors{
		"username": "Username is required",
		"password": "Password must be at least 3 characters",
	}, v.Validate(&req))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	body, err := json.Marshal(map[string]string{"username": string(long), "password": "secret"})
	require.NoError(t, err)
	req = LoginRequest{}
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, validation.Errors{"username": "Username max 100 characters"}, v.Validate(&req))

	req = LoginRequest{}
	err = json.Unmarshal([]byte(`{"username": 123, "password": "secret"}`), &req)
	require.Error(t, err)
	assert.Equal(t, validation.Errors{"username": "Username must be a string"}, validation.FromDecode(err, &req))

	req = LoginRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"username": "user_test", "password": "secret"}`), &req))
	assert.NoError(t, v.Validate(&req))
}

func TestListUsersQuery_Validation(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(&ListUsersQuery{Limit: 10}))
	assert.Equal(t, validation.Errors{"limit": "Limit must be greater than or equal to 1"}, v.Validate(&ListUsersQuery{Limit: 0}))
	assert.Equal(t, validation.Errors{"offset": "Offset must be greater than or equal to 0"}, v.Validate(&ListUsersQuery{Limit: 1, Offset: -1}))
}
