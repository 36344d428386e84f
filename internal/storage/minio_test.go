package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	ms := &minioStorage{bucket: "docs", baseURL: "http://localhost:9000"}

	assert.Equal(t, "http://localhost:9000/docs/documents/report.pdf", ms.URL("documents/report.pdf"))
}

func TestKeyFromURL(t *testing.T) {
	ms := &minioStorage{bucket: "docs", baseURL: "http://localhost:9000"}

	tests := []struct {
		name    string
		url     string
		wantKey string
		wantErr bool
	}{
		{
			name:    "round trip",
			url:     ms.URL("documents/report.pdf"),
			wantKey: "documents/report.pdf",
		},
		{
			name:    "nested key",
			url:     "http://localhost:9000/docs/documents/a/b/c.png",
			wantKey: "documents/a/b/c.png",
		},
		{
			name:    "wrong bucket",
			url:     "http://localhost:9000/other/documents/report.pdf",
			wantErr: true,
		},
		{
			name:    "bucket only, no key",
			url:     "http://localhost:9000/docs/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ms.KeyFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
