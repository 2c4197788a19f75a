package pipeline

import (
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/vonZeppelin/tvshowl/episode"
)

// Output is the JSON document written by a preview.
type Output struct {
	Since    time.Time         `json:"since"`
	Episodes []episode.Episode `json:"episodes"`
}

func writeJSON(w io.Writer, episodes []episode.Episode, options *Options) error {
	if episodes == nil {
		episodes = []episode.Episode{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&Output{
		Since:    options.Cutoff,
		Episodes: episodes,
	})
}

// Schema returns the JSON Schema of Output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "episode", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
