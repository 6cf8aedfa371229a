package types_test

import (
	"testing"

	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewPendingFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantBase string
		wantExt  string
	}{
		{"simple", "draft.jpg", "draft", "jpg"},
		{"nested", "notes/2024/photo.png", "photo", "png"},
		{"double_extension", "backup.tar.gz", "backup.tar", "gz"},
		{"no_extension", "inbox/README", "README", ""},
		{"dotfile", ".gitignore", ".gitignore", ""},
		{"trailing_dot", "weird.", "weird", ""},
		{"spaces", "Pasted image 20240101.png", "Pasted image 20240101", "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := types.NewPendingFile(tt.path)
			assert.Equal(t, tt.path, f.Path)
			assert.Equal(t, tt.wantBase, f.BaseName)
			assert.Equal(t, tt.wantExt, f.Extension)
		})
	}
}

func TestPendingFileName(t *testing.T) {
	assert.Equal(t, "photo.png", types.NewPendingFile("a/b/photo.png").Name())
}

func TestOutcome(t *testing.T) {
	assert.True(t, types.OutcomeMoved.Succeeded())
	assert.True(t, types.OutcomeInPlace.Succeeded())
	assert.False(t, types.OutcomeCollision.Succeeded())

	assert.True(t, types.OutcomeCollision.IsWarning())
	assert.True(t, types.OutcomeNoRule.IsWarning())
	assert.False(t, types.OutcomeMoveFailed.IsWarning())
}
