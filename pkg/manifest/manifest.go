// Package manifest reads task definitions from JSON, TOML, or YAML files.
//
// A manifest lists tasks and the tasks they depend on:
//
//	{
//	  "tasks": [
//	    {"id": "build"},
//	    {"id": "test", "depends_on": ["build"]}
//	  ]
//	}
//
// The same shape is accepted as TOML (an array of [[tasks]] tables) and YAML.
// Decoding produces the identifier → node mapping expected by
// [github.com/matzehuels/taskdag/pkg/taskgraph.Build]; dependency references
// are not resolved here.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
	"github.com/matzehuels/taskdag/pkg/task"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Manifest is the decoded document.
type Manifest struct {
	Tasks []Entry `json:"tasks" toml:"tasks" yaml:"tasks"`
}

// Entry is one task definition.
type Entry struct {
	ID        string   `json:"id" toml:"id" yaml:"id"`
	DependsOn []string `json:"depends_on,omitempty" toml:"depends_on" yaml:"depends_on,omitempty"`
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	if err := taskerrors.ValidateManifestPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatYAML, nil
	}
}

// ParseFormat converts a user-supplied name such as "yml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", taskerrors.New(taskerrors.ErrCodeInvalidFormat, "unknown manifest format %q", s)
}

// Decode reads a manifest document from r without validating it.
func Decode(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&m)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&m)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, taskerrors.New(taskerrors.ErrCodeInvalidFormat, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, taskerrors.Wrap(taskerrors.ErrCodeInvalidManifest, err, "decode %s", format)
	}
	return &m, nil
}

// Nodes validates the manifest and converts it into task nodes keyed by ID.
// Every ID must be valid and unique. Dependencies are validated for syntax
// only; whether they exist is checked when the graph is built.
func (m *Manifest) Nodes() (map[string]*task.Node, error) {
	tasks := make(map[string]*task.Node, len(m.Tasks))
	for i, e := range m.Tasks {
		if err := taskerrors.ValidateTaskID(e.ID); err != nil {
			return nil, taskerrors.Wrap(taskerrors.ErrCodeInvalidManifest, err, "tasks[%d]", i)
		}
		if _, dup := tasks[e.ID]; dup {
			return nil, taskerrors.New(taskerrors.ErrCodeInvalidManifest, "duplicate task %q at tasks[%d]", e.ID, i)
		}
		n, err := task.New(e.ID)
		if err != nil {
			return nil, taskerrors.Wrap(taskerrors.ErrCodeInvalidManifest, err, "tasks[%d]", i)
		}
		for _, dep := range e.DependsOn {
			if err := taskerrors.ValidateTaskID(dep); err != nil {
				return nil, taskerrors.Wrap(taskerrors.ErrCodeInvalidManifest, err, "task %q dependency", e.ID)
			}
			n.AddDependence(dep)
		}
		tasks[e.ID] = n
	}
	return tasks, nil
}

// Read decodes and validates a manifest from r.
func Read(r io.Reader, format Format) (map[string]*task.Node, error) {
	m, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return m.Nodes()
}

// Load reads the manifest at path, inferring the format from its extension.
func Load(path string) (map[string]*task.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(path, format)
}

// LoadAs reads the manifest at path using an explicit format.
func LoadAs(path string, format Format) (map[string]*task.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, taskerrors.Wrap(taskerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tasks, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}
