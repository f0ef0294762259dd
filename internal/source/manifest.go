package source

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/dshills/release-it/internal/tree"
)

const (
	// ManifestFile is the package manifest filename.
	ManifestFile = "package.json"

	// ManifestConfigKey is the manifest key holding release-it overrides.
	ManifestConfigKey = "release-it"
)

// Manifest is a parsed package.json. The zero value represents a project
// without a manifest.
type Manifest struct {
	Path string
	raw  []byte
}

// LoadManifest reads package.json from the project directory. A missing
// manifest is not an error.
func (l *Loader) LoadManifest() (Manifest, error) {
	path := l.resolve(ManifestFile)
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug().Str("path", path).Msg("no package manifest")
			return Manifest{}, nil
		}
		return Manifest{}, &ParseError{Path: path, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return Manifest{}, &ParseError{Path: path, Err: errors.New("invalid JSON")}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return Manifest{}, &ParseError{Path: path, Err: errors.New("top-level value must be an object")}
	}
	l.logger.Debug().Str("path", path).Msg("loaded package manifest")
	return Manifest{Path: path, raw: data}, nil
}

// Exists reports whether a manifest was found.
func (m Manifest) Exists() bool {
	return m.raw != nil
}

// Config returns the release-it override block, or an empty tree when it is
// absent or not an object.
func (m Manifest) Config() tree.Tree {
	if !m.Exists() {
		return tree.New()
	}
	r := gjson.GetBytes(m.raw, ManifestConfigKey)
	if !r.IsObject() {
		return tree.New()
	}
	obj, ok := r.Value().(map[string]any)
	if !ok {
		return tree.New()
	}
	return tree.FromMap(obj)
}

// Fields returns the manifest-derived settings: version, name and private
// as found in the manifest, and publish, which is true unless the package
// is private or publishConfig.publish is false.
func (m Manifest) Fields() tree.Tree {
	t := tree.New()
	if m.Exists() {
		for _, key := range []string{"version", "name", "private"} {
			if r := gjson.GetBytes(m.raw, key); r.Exists() {
				t[key] = r.Value()
			}
		}
	}
	t["publish"] = m.publishable()
	return t
}

func (m Manifest) publishable() bool {
	if !m.Exists() {
		return true
	}
	if gjson.GetBytes(m.raw, "private").Type == gjson.True {
		return false
	}
	if gjson.GetBytes(m.raw, "publishConfig.publish").Type == gjson.False {
		return false
	}
	return true
}
