package memory

import "github.com/gobeaver/sniffkit"

func init() {
	sniffkit.RegisterDriver("memory", func(cfg *sniffkit.Config) (sniffkit.Source, error) {
		return New(), nil
	})
}
