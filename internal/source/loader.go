package source

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dshills/release-it/internal/tree"
)

// DefaultLocalConfig is the well-known local config filename.
const DefaultLocalConfig = ".release-it.json"

// LocalConfigNames are tried in order when no explicit path is given.
var LocalConfigNames = []string{
	DefaultLocalConfig,
	".release-it.jsonc",
	".release-it.yaml",
	".release-it.yml",
	".release-it.toml",
}

// Loader reads configuration sources from a project directory.
type Loader struct {
	fs     afero.Fs
	dir    string
	logger zerolog.Logger
}

// NewLoader creates a Loader rooted at dir. A nil fs means the OS filesystem.
func NewLoader(fsys afero.Fs, dir string, logger zerolog.Logger) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Loader{fs: fsys, dir: dir, logger: logger}
}

// LoadLocal loads the local config file.
//
// With an explicit path, a missing file is a *FileNotFoundError carrying the
// path as given. Without one, the well-known names are tried in order and
// absence of all of them yields an empty tree. The second return value is
// the file that was read, or "".
func (l *Loader) LoadLocal(explicit string) (tree.Tree, string, error) {
	if explicit != "" {
		path := l.resolve(explicit)
		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, "", &FileNotFoundError{Path: explicit}
			}
			return nil, "", &ParseError{Path: path, Err: err}
		}
		t, err := Decode(path, data)
		if err != nil {
			return nil, "", err
		}
		l.logger.Debug().Str("path", path).Msg("loaded local config")
		return t, path, nil
	}

	for _, name := range LocalConfigNames {
		path := l.resolve(name)
		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, "", &ParseError{Path: path, Err: err}
		}
		t, err := Decode(path, data)
		if err != nil {
			return nil, "", err
		}
		l.logger.Debug().Str("path", path).Msg("loaded local config")
		return t, path, nil
	}

	l.logger.Debug().Str("dir", l.dir).Msg("no local config file")
	return tree.New(), "", nil
}

func (l *Loader) resolve(path string) string {
	if filepath.IsAbs(path) || l.dir == "" {
		return path
	}
	return filepath.Join(l.dir, path)
}

// Decode parses config content, choosing the format from the file
// extension. JSON is the fallback and may contain comments.
func Decode(path string, data []byte) (tree.Tree, error) {
	var m map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		var v any
		if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, &ParseError{Path: path, Err: errors.New("top-level value must be an object")}
		}
		m = obj
	}
	if m == nil {
		return tree.New(), nil
	}
	return tree.FromMap(m), nil
}
