package journal

import (
	"time"

	"github.com/arthur-debert/filerouter/pkg/types"
)

// Entry is one routed file as stored in the journal
type Entry struct {
	ID          int64         `json:"id" yaml:"id"`
	DrainID     string        `json:"drain_id" yaml:"drain_id"`
	Vault       string        `json:"vault" yaml:"vault"`
	Source      string        `json:"source" yaml:"source"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
	Outcome     types.Outcome `json:"outcome" yaml:"outcome"`
	Pattern     string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	ErrorCode   string        `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Message     string        `json:"message" yaml:"message"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
}

// ListOptions filters List results
type ListOptions struct {
	Vault   string
	Outcome types.Outcome
	Limit   int
}
