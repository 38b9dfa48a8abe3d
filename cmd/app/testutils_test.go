package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

const testJWTSecret = "test-secret"

func testConfig() *Config {
	return &Config{
		Environment:    "testing",
		Version:        "test",
		TrustedOrigins: []string{"http://localhost:3000"},
		JWT:            JWTConfig{Secret: testJWTSecret, Issuer: "bloglist", TTL: time.Hour},
	}
}

// newMockApplication wires the services to a sqlmock database.
func newMockApplication(t *testing.T) (*application, sqlmock.Sqlmock, *userservice.TokenManager) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	cache := common.NewCache(time.Minute, time.Minute)
	tokens := userservice.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	app := &application{
		config:      cfg,
		logger:      zerolog.Nop(),
		userService: userservice.NewUserService(db, nil, cache, tokens, zerolog.Nop()),
		blogService: blogservice.NewBlogService(db, cache),
	}

	return app, mock, tokens
}

// newTestApplication wires the services to a migrated postgres container.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	db := common.TestDB(t)

	cfg := testConfig()
	cache := common.NewCache(time.Minute, time.Minute)
	tokens := userservice.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	return &application{
		config:      cfg,
		logger:      zerolog.Nop(),
		userService: userservice.NewUserService(db, nil, cache, tokens, zerolog.Nop()),
		blogService: blogservice.NewBlogService(db, cache),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// do sends a JSON request and decodes the envelope of the response. An empty body decodes to nil.
func (ts *testServer) do(t *testing.T, method, path string, token string, payload any) (int, http.Header, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	if len(responseBody) > 0 {
		require.NoError(t, json.Unmarshal(responseBody, &env))
	}

	return res.StatusCode, res.Header, env
}
