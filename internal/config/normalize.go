package config

import "strings"

// normalize expands and absolutizes paths and canonicalizes list values.
// It runs after decoding and before validation.
func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.StagingDir,
		&c.Paths.CategoryDir,
		&c.Paths.ItemsDir,
		&c.Paths.DataDir,
		&c.Paths.LogDir,
	} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Ledger.FileName = strings.TrimSpace(c.Ledger.FileName)
	c.Ledger.IDPrefix = strings.TrimSpace(c.Ledger.IDPrefix)
	c.Hashtags.BankFile = strings.TrimSpace(c.Hashtags.BankFile)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	normalized := make([]string, 0, len(c.Photos.Extensions))
	for _, ext := range c.Photos.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Photos.Extensions = normalized

	return nil
}
