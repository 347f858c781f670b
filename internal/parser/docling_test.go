package parser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doclingServer(t *testing.T, convert http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/convert/file", convert)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDocling_Parse(t *testing.T) {
	srv := doclingServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, fh, err := r.FormFile("files")
		require.NoError(t, err)
		body, _ := io.ReadAll(f)
		assert.Equal(t, "report.pdf", fh.Filename)
		assert.Equal(t, "%PDF-bytes", string(body))
		assert.ElementsMatch(t, []string{"text", "md"}, r.MultipartForm.Value["to_formats"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","document":{"text_content":"line1\r\nline2","md_content":"# md"}}`))
	})

	p, err := NewDocling(srv.URL+"/", srv.Client())(context.Background())
	require.NoError(t, err)

	doc, err := p.Parse(context.Background(), []byte("%PDF-bytes"), Options{FileName: "/tmp/report.pdf", NewlineDelimiter: "\n"})
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", doc.Text())
}

func TestDocling_FallsBackToMarkdown(t *testing.T) {
	srv := doclingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","document":{"md_content":"# Title\nbody"}}`))
	})

	p, err := NewDocling(srv.URL, srv.Client())(context.Background())
	require.NoError(t, err)

	doc, err := p.Parse(context.Background(), []byte("x"), Options{FileName: "a.docx", NewlineDelimiter: " "})
	require.NoError(t, err)
	assert.Equal(t, "# Title body", doc.Text())
}

func TestDocling_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: "status 502",
		},
		{
			name: "failure status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"failure","errors":[{"error_message":"bad input"}]}`))
			},
			wantErr: "bad input",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{`))
			},
			wantErr: "decode convert response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := doclingServer(t, tt.handler)
			p, err := NewDocling(srv.URL, srv.Client())(context.Background())
			require.NoError(t, err)

			_, err = p.Parse(context.Background(), []byte("x"), Options{FileName: "a.pdf"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDocling_LoadFailsWhenUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewDocling(srv.URL, srv.Client())(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
