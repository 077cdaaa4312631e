package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func testConfig() config.Config {
	return config.Config{JWTSecret: testSecret}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  "7",
		"role": "CUSTOMER",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

// AuthJWTを通した結果のstatusと、contextに入った値を返す
func runAuthJWT(t *testing.T, authzHeader string) (int, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if authzHeader != "" {
		req.Header.Set("Authorization", authzHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	err := middleware.AuthJWT(testConfig())(next)(c)
	assert.NoError(t, err)
	return rec.Code, c
}

func TestAuthJWT_NoHeader(t *testing.T) {
	code, _ := runAuthJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	code, _ := runAuthJWT(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthJWT_GarbageToken(t *testing.T) {
	code, _ := runAuthJWT(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", validClaims())
	code, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	token := signToken(t, testSecret, claims)
	code, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	token := signToken(t, testSecret, validClaims())
	code, c := runAuthJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(7), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "CUSTOMER", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_MissingRoleClaim(t *testing.T) {
	claims := validClaims()
	delete(claims, "role")

	token := signToken(t, testSecret, claims)
	code, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func runRoleGuard(t *testing.T, required model.Role, role interface{}) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(middleware.CtxUserRoleKey, role)
	}

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	err := middleware.RoleGuard(required)(next)(c)
	assert.NoError(t, err)
	return rec.Code
}

func TestRoleGuard_MatchingRolePasses(t *testing.T) {
	code := runRoleGuard(t, model.RoleAdmin, "ADMIN")
	assert.Equal(t, http.StatusOK, code)
}

func TestRoleGuard_WrongRoleForbidden(t *testing.T) {
	code := runRoleGuard(t, model.RoleAdmin, "CUSTOMER")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRoleGuard_MissingRoleUnauthorized(t *testing.T) {
	code := runRoleGuard(t, model.RoleAdmin, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
