package types

// Rule maps files whose path matches Pattern to the Destination directory.
// Pattern is a regular expression evaluated against the whole vault-relative
// path without implicit anchoring.
type Rule struct {
	Pattern     string `koanf:"pattern" toml:"pattern" yaml:"pattern" json:"pattern"`
	Destination string `koanf:"destination" toml:"destination" yaml:"destination" json:"destination"`
}

// RouterConfig is the user-facing routing configuration.
type RouterConfig struct {
	// AttachmentNameTemplate renders the destination file name. It understands
	// ${fileName}, ${fileExtention} and ${timestamp}.
	AttachmentNameTemplate string `koanf:"attachment_name_template" toml:"attachment_name_template"`

	// SkipPattern excludes matching paths from the intake queue. An empty
	// pattern skips nothing.
	SkipPattern string `koanf:"skip_pattern" toml:"skip_pattern"`

	// AutoCreateDestinationDir creates missing destination directories
	AutoCreateDestinationDir bool `koanf:"auto_create_destination_dir" toml:"auto_create_destination_dir"`

	// Rules are evaluated in order; the first match wins
	Rules []Rule `koanf:"rules" toml:"rules"`
}
