package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anonContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRegisterLoginFlow(t *testing.T) {
	setupTest(t)
	t.Setenv("JWT_SECRET", "test-secret")

	body := `{"email": "asha@carheroz.in", "name": "Asha", "password": "supersecret"}`
	c, w := anonContext(t, http.MethodPost, "/auth/register", body)
	Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered["token"])

	// Duplicate email is rejected
	c, w = anonContext(t, http.MethodPost, "/auth/register", body)
	Register(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password
	c, w = anonContext(t, http.MethodPost, "/auth/login",
		`{"email": "asha@carheroz.in", "password": "wrongsecret"}`)
	Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct credentials
	c, w = anonContext(t, http.MethodPost, "/auth/login",
		`{"email": "asha@carheroz.in", "password": "supersecret"}`)
	Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.NotEmpty(t, loggedIn["token"])
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	setupTest(t)
	t.Setenv("JWT_SECRET", "test-secret")

	c, w := anonContext(t, http.MethodPost, "/auth/register",
		`{"email": "asha@carheroz.in", "name": "Asha", "password": "short"}`)
	Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
