package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"bare key passthrough", "doctor-verification/1/license.pdf", "doctor-verification/1/license.pdf"},
		{
			"public url with query",
			"https://proj.supabase.co/storage/v1/object/docs/1/license.pdf?token=abc&d=1",
			"docs/1/license.pdf",
		},
		{
			"public url without query",
			"https://proj.supabase.co/storage/v1/object/docs/1/license.pdf",
			"docs/1/license.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveKey(tt.ref))
		})
	}
}

func TestSplitKey(t *testing.T) {
	bucket, path := SplitKey("docs/1/license.pdf")
	assert.Equal(t, "docs", bucket)
	assert.Equal(t, "1/license.pdf", path)

	bucket, path = SplitKey("justbucket")
	assert.Equal(t, "justbucket", bucket)
	assert.Equal(t, "", path)
}
