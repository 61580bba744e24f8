package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCompile(t *testing.T, srv *httptest.Server, body string) (int, compileResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/compile", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out compileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_, err = uuid.FromString(out.ID)
	assert.NoError(t, err, "response id %q is not a uuid", out.ID)
	return resp.StatusCode, out
}

func TestServeCompile(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "main"))
	defer srv.Close()

	status, resp := postCompile(t, srv, `{"source": "1+2*3", "validate": true}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp.Error)
	assert.True(t, strings.HasPrefix(resp.Assembly, ".intel_syntax noprefix\n.globl main\n"))
}

func TestServeCompileError(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "main"))
	defer srv.Close()

	status, resp := postCompile(t, srv, `{"source": "let a = 1;\nb", "filename": "req.wv"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Empty(t, resp.Assembly)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E2001", resp.Error.Code)
	assert.Equal(t, "compile", resp.Error.Category)
	assert.Equal(t, "undefined variable", resp.Error.Description)
	assert.Equal(t, "parse error", resp.Error.Kind)
	assert.Equal(t, `undefined identifier "b"`, resp.Error.Message)
	assert.Equal(t, "req.wv", resp.Error.Filename)
	assert.Equal(t, 2, resp.Error.Line)
	assert.Equal(t, 1, resp.Error.Column)
	assert.Contains(t, resp.Error.Rendered, "--> req.wv:2:1")

	status, resp = postCompile(t, srv, `{"source": "10 = 10"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "E2011", resp.Error.Code)
	assert.Equal(t, "compile error", resp.Error.Kind)
	assert.Equal(t, "not a left value", resp.Error.Description)
}

func TestServeRejectsNulByte(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "main"))
	defer srv.Close()

	status, resp := postCompile(t, srv, `{"source": "1\u0000 + undefined_name"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Empty(t, resp.Assembly)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E1012", resp.Error.Code)
	assert.Equal(t, "parse", resp.Error.Category)
	assert.Equal(t, "illegal character", resp.Error.Description)
}

func TestServeBadRequest(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "main"))
	defer srv.Close()

	for _, body := range []string{`{"source": `, `{"code": "1"}`} {
		status, resp := postCompile(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "request error", resp.Error.Kind)
	}
}

func TestServeEntry(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "entry_point"))
	defer srv.Close()
	_, resp := postCompile(t, srv, `{"source": "1"}`)
	assert.Contains(t, resp.Assembly, ".globl entry_point\n")
}

func TestServeHealth(t *testing.T) {
	srv := httptest.NewServer(newServer(zerolog.Nop(), "main"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/compile")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}

// syncBuffer is a bytes.Buffer safe for use by the server and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeLogsRequests(t *testing.T) {
	var buf syncBuffer
	srv := httptest.NewServer(newServer(zerolog.New(&buf), "main"))
	defer srv.Close()

	postCompile(t, srv, `{"source": "1"}`)
	// The request is logged after the response has been written.
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), `"path":"/compile"`)
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"method":"POST"`)
}
