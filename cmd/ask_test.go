package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bz888/policyask/internal/form"
	"github.com/bz888/policyask/internal/search"
	"github.com/stretchr/testify/assert"
)

func newBackend(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskPrintsAnswer(t *testing.T) {
	srv := newBackend(t, http.StatusOK, `{"answer":"Apply through the youth centre."}`)
	var stdout, stderr bytes.Buffer

	code := ask(form.New(search.NewClient(search.WithEndpoint(srv.URL))), "how do I apply?", &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "Apply through the youth centre.\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestAskPrintsError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusBadRequest, `{"detail":"bad request"}`, "Error: bad request\n"},
		{"fallback", http.StatusInternalServerError, `{}`, "Error: server error: 500\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBackend(t, tt.status, tt.body)
			var stdout, stderr bytes.Buffer

			code := ask(form.New(search.NewClient(search.WithEndpoint(srv.URL))), "q", &stdout, &stderr)

			assert.Equal(t, 1, code)
			assert.Empty(t, stdout.String())
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestAskBlankQuestion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := ask(form.New(search.NewClient()), "   ", &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: "+form.ValidationMessage+"\n", stderr.String())
}
