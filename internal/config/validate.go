package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Paths.StagingDir != "", "paths.staging_dir must be set")
	check(c.Paths.CategoryDir != "", "paths.category_dir must be set")
	check(c.Paths.ItemsDir != "", "paths.items_dir must be set")
	check(c.Paths.DataDir != "", "paths.data_dir must be set")
	check(c.Paths.LogDir != "", "paths.log_dir must be set")

	if c.Paths.APIBind != "" {
		if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
			problems = append(problems, fmt.Sprintf("paths.api_bind %q is not host:port", c.Paths.APIBind))
		}
	}

	check(c.Ledger.FileName != "", "ledger.file_name must be set")
	check(c.Ledger.IDPrefix != "", "ledger.id_prefix must be set")
	check(c.Ledger.IDStart >= 1, "ledger.id_start must be >= 1 (got %d)", c.Ledger.IDStart)
	check(c.Ledger.IDWidth >= 1 && c.Ledger.IDWidth <= 6, "ledger.id_width must be 1..6 (got %d)", c.Ledger.IDWidth)

	check(c.Photos.MaxPerItem >= 1, "photos.max_per_item must be >= 1 (got %d)", c.Photos.MaxPerItem)
	check(c.Photos.PreviewMaxDim >= 1, "photos.preview_max_dim must be >= 1 (got %d)", c.Photos.PreviewMaxDim)
	check(c.Photos.PreviewQuality >= 1 && c.Photos.PreviewQuality <= 100,
		"photos.preview_quality must be 1..100 (got %d)", c.Photos.PreviewQuality)
	check(len(c.Photos.Extensions) > 0, "photos.extensions must list at least one extension")

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
