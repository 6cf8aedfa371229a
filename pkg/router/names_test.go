package router_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "20240102T030405678Z", router.Timestamp(testTime))

	local := time.Date(2024, 1, 2, 5, 4, 5, 0, time.FixedZone("X", 2*3600))
	assert.Equal(t, "20240102T030405000Z", router.Timestamp(local), "always UTC")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name         string
		tmpl         string
		path         string
		want         string
		wantFallback bool
	}{
		{"default", "${fileName}.${fileExtention}", "x/draft.jpg", "draft.jpg", false},
		{"prefix", "img-${fileName}.${fileExtention}", "a.png", "img-a.png", false},
		{"empty_template", "", "a.png", "a.png", true},
		{"empty_no_extension", "", "README", "README", true},
		{"no_extension_keeps_dot", "${fileName}.${fileExtention}", "README", "README.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fallback := router.FileName(tt.tmpl, types.NewPendingFile(tt.path), testTime)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFallback, fallback)
		})
	}
}
