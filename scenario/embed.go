package scenario

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/oerror"
)

//go:embed *.yaml
var ScenariosFS embed.FS

// DiskDir is searched for a scenario before the embedded set, so shipped scenarios can be edited
// without rebuilding.
var DiskDir = "scenarios"

// Load returns the named scenario. The name may be given with or without the .yaml extension.
func Load(name string) (*Scenario, error) {
	clean := cleanName(name)
	data, err := os.ReadFile(filepath.Join(DiskDir, clean))
	if err != nil {
		data, err = ScenariosFS.ReadFile(clean)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerror.New(game.ErrorScenarioNotFound, name)
	} else if err != nil {
		return nil, oerror.New(game.ErrorScenarioDecode, name, err)
	}
	return Parse(strings.TrimSuffix(clean, ".yaml"), data)
}

// LoadFile reads a scenario from an arbitrary path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.New(game.ErrorScenarioDecode, path, err)
	}
	return Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data)
}

// Names lists the embedded scenarios.
func Names() []string {
	entries, err := ScenariosFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func cleanName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "scenarios/")
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return s
}
