package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/codec"
	"github.com/reoring/aclmsg/middleware"
)

func echoAccounts(t *testing.T) http.Handler {
	return middleware.Decode(middleware.Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := middleware.MessageFromContext(r.Context())
		require.True(t, ok)
		middleware.WriteMessage(w, r, http.StatusOK, m)
	}))
}

func TestDecode_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader(`{"accounts":{"svc1":{"keys":"*"}}}`))
	rec := httptest.NewRecorder()
	echoAccounts(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"accounts":{"svc1":{"keys":"*"}}}`, rec.Body.String())
}

func TestDecode_YAMLToMsgPack(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader("accounts:\n  svc1:\n    keys: '*'\n"))
	req.Header.Set("Content-Type", "application/x-yaml")
	req.Header.Set("Accept", "application/msgpack")
	rec := httptest.NewRecorder()
	echoAccounts(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	m, err := codec.MsgPack{}.Decode(context.Background(), rec.Body.Bytes())
	require.NoError(t, err)
	s, ok := m.Accounts["svc1"][aclmsg.AccountKeyKeys].AsString()
	require.True(t, ok)
	assert.Equal(t, "*", s)
}

func TestDecode_IssuesPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader(`{"accounts":{"svc1":{"owner":"x"}},"extra":1}`))
	rec := httptest.NewRecorder()
	echoAccounts(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Issues []middleware.IssuePayload `json:"issues"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Issues, 2)
	assert.Equal(t, aclmsg.CodeInvalidEnum, body.Issues[0].Code)
	assert.Equal(t, "/accounts/svc1/owner", body.Issues[0].Path)
	assert.Equal(t, aclmsg.CodeUnknownKey, body.Issues[1].Code)
	assert.Equal(t, "/extra", body.Issues[1].Path)
}

func TestDecode_DuplicateKeyRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader(`{"accounts":{},"accounts":{}}`))
	rec := httptest.NewRecorder()
	echoAccounts(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), aclmsg.CodeDuplicateKey)
}

func TestDecode_StatusCodes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader(`accounts`))
	req.Header.Set("Content-Type", "text/plain")
	_, status, err := middleware.DecodeRequest(req, middleware.Options{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	big := bytes.Repeat([]byte(" "), 64)
	req = httptest.NewRequest(http.MethodPost, "/acl", bytes.NewReader(append(big, []byte(`{"accounts":{}}`)...)))
	_, status, err = middleware.DecodeRequest(req, middleware.Options{MaxBytes: 16})
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestDecode_CustomParseOpt(t *testing.T) {
	opt := aclmsg.ParseOpt{}
	req := httptest.NewRequest(http.MethodPost, "/acl", strings.NewReader(`{"accounts":{},"extra":1}`))
	m, status, err := middleware.DecodeRequest(req, middleware.Options{ParseOpt: &opt})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, m.Accounts)
}
