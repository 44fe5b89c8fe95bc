package components

import (
	"io/fs"
	"os"

	"github.com/pthm/tagcmp"
)

// Config holds the settings of the address and script components.
type Config struct {
	// AddressMarkup is appended inside navigable address blocks.
	AddressMarkup string
	// AddressOrder defaults to 1 when zero.
	AddressOrder int
	// PrintMarkup is appended to printable address blocks.
	PrintMarkup string
	PrintOrder  int
	// MapURL defaults to DefaultMapURL when empty.
	MapURL string
	// ContentRoot holds Files/AddressToolTipScript.html. Defaults to the
	// working directory.
	ContentRoot fs.FS
}

// Init creates the components and registers them, adding address to the
// registry's target elements.
// Call this once at application startup before handling requests.
//
// Usage:
//
//	reg := tagcmp.NewRegistry()
//	components.Init(reg, components.Config{
//	    AddressMarkup: "<b>HQ</b>",
//	    ContentRoot:   os.DirFS("."),
//	})
func Init(reg *tagcmp.Registry, cfg Config) {
	opts := []AddressOption{}
	if cfg.AddressOrder != 0 {
		opts = append(opts, WithAddressOrder(cfg.AddressOrder))
	}
	if cfg.MapURL != "" {
		opts = append(opts, WithMapURL(cfg.MapURL))
	}

	root := cfg.ContentRoot
	if root == nil {
		root = os.DirFS(".")
	}

	reg.Target("address")
	reg.Add(
		NewAddress(cfg.AddressMarkup, opts...),
		NewMarkup(cfg.PrintMarkup, cfg.PrintOrder),
		NewScriptFile(root),
		NewScriptInline(),
	)
}
