package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42)
	require.NoError(t, err)

	id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	_, err = ParseToken("secret", "not-a-token")
	assert.Error(t, err)

	expired, err := GenerateToken("secret", -time.Minute, 42)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err)
}

func TestAuthzPredicates(t *testing.T) {
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee}
	adm := &db.AppUser{ID: 2, RoleName: db.RoleFleetAdmin}

	assert.False(t, CanAdminister(emp))
	assert.True(t, CanAdminister(adm))
	assert.False(t, CanAdminister(nil))

	assert.True(t, Owns(emp, 1))
	assert.False(t, Owns(emp, 2))

	assert.True(t, CanAccess(emp, 1))
	assert.False(t, CanAccess(emp, 2))
	assert.True(t, CanAccess(adm, 1))
}

type stubUserStore struct {
	users map[int]*db.AppUser
}

func (s *stubUserStore) GetByID(id int) (*db.AppUser, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return u, nil
}

func TestAuthenticateMiddleware(t *testing.T) {
	store := &stubUserStore{users: map[int]*db.AppUser{
		1: {ID: 1, RoleName: db.RoleEmployee, IsActive: true},
		2: {ID: 2, RoleName: db.RoleEmployee, IsActive: false},
	}}
	mw := NewMiddleware("secret", store)

	var caller *db.AppUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = CallerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Authenticate(next)

	do := func(authHeader string) *httptest.ResponseRecorder {
		caller = nil
		req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	token, err := GenerateToken("secret", time.Hour, 1)
	require.NoError(t, err)
	rec := do("Bearer " + token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, caller)
	assert.Equal(t, 1, caller.ID)

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer garbage").Code)

	// Token for an unknown user.
	ghost, err := GenerateToken("secret", time.Hour, 99)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer "+ghost).Code)

	// Deactivated accounts are locked out even with a valid token.
	inactive, err := GenerateToken("secret", time.Hour, 2)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer "+inactive).Code)
}
