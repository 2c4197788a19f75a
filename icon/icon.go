// Package icon renders status symbols for CLI output in the configured variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/key"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants lists the supported icon sets.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Skip
	Card
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓"},
	Fail:     {emoji: "❌", nerd: "", plain: "✖"},
	Progress: {emoji: "⏳", nerd: "", plain: "…"},
	Skip:     {emoji: "⏭️", nerd: "", plain: "-"},
	Card:     {emoji: "📺", nerd: "", plain: "+"},
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns the symbol for i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
