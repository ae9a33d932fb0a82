package local

import "github.com/gobeaver/sniffkit"

func init() {
	sniffkit.RegisterDriver("local", func(cfg *sniffkit.Config) (sniffkit.Source, error) {
		return New(cfg.LocalBasePath)
	})
}
