package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/constant"
	"github.com/vonZeppelin/tvshowl/key"
	"github.com/vonZeppelin/tvshowl/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// LegacyEnv is an unprefixed environment variable also accepted for the key.
	LegacyEnv string
	// Secret values are masked when printed.
	Secret bool
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the prefixed environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Tvshowl + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON includes the current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Env:         f.Env(),
	})
}

// Current is the effective value, with secrets masked.
func (f *Field) Current() any {
	v := viper.Get(f.Key)
	if f.Secret {
		if s, ok := v.(string); ok && s != "" {
			return strings.Repeat("*", 8)
		}
	}
	return v
}

// Default holds every known configuration field, keyed by its viper key.
var Default = make(map[string]Field)

// EnvExposed holds the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(f Field) {
		if _, exists := Default[f.Key]; exists {
			panic("Duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}

	register(Field{Key: key.FeedURL, Value: "", Description: "Feed URL (or local path) listing newly released episodes", LegacyEnv: "FEED_URL"})
	register(Field{Key: key.FeedWindow, Value: "24h", Description: "How far back to look for episodes.\nThe cutoff is the current time minus this duration"})
	register(Field{Key: key.FeedSince, Value: "", Description: "Explicit cutoff, RFC 3339 or YYYY-MM-DD.\nOverrides feed.window when set"})
	register(Field{Key: key.FeedTimeout, Value: "60s", Description: "Timeout for fetching the feed"})
	register(Field{Key: key.TrelloBoard, Value: "", Description: "Trello board ID.\nCards are added to the first open list of this board", LegacyEnv: "TRELLO_BOARD"})
	register(Field{Key: key.TrelloKey, Value: "", Description: "Trello API key.\nFalls back to the system keyring (see \"tvshowl auth\")", LegacyEnv: "TRELLO_KEY", Secret: true})
	register(Field{Key: key.TrelloToken, Value: "", Description: "Trello API token.\nFalls back to the system keyring (see \"tvshowl auth\")", LegacyEnv: "TRELLO_TOKEN", Secret: true})
	register(Field{Key: key.LogsWrite, Value: false, Description: "Write logs"})
	register(Field{Key: key.LogsLevel, Value: "info", Description: "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"})
	register(Field{Key: key.LogsJson, Value: false, Description: "Use json format for logs"})
	register(Field{Key: key.CliColored, Value: true, Description: "Enable colored CLI output"})
	register(Field{Key: key.IconsVariant, Value: "plain", Description: "Icons variant.\nAvailable options are: emoji, plain, nerd (nerd-font required)"})
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(style.Purple),
	"blue":     style.Fg(style.Blue),
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}{{ with .LegacyEnv }}, {{ . }}{{ end }}
{{ blue "Value:" }}   {{ hl (.Current) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
