package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pathSpecSeparator is the component separator used by load_path_spec and
// DERIVED_CONFIG (spec.md §6): a literal ':', not the OS path separator,
// matching the derived-metrics configuration format PCP itself uses.
const pathSpecSeparator = ":"

// LoadPathSpec loads every component of pathSpec (components separated
// by pathSpecSeparator). Each component may be a regular file (loaded as
// a configuration stream) or a directory, walked one level with any
// subdirectory entries recursed the same way, skipping "." and ".."
// (spec.md §4.F). In tolerant mode, file/directory errors (missing path,
// read failure) are swallowed; otherwise the first one is returned.
func (r *Registry) LoadPathSpec(pathSpec string, tolerant bool) (int, error) {
	total := 0
	for _, component := range strings.Split(pathSpec, pathSpecSeparator) {
		component = strings.TrimSpace(component)
		if component == "" {
			continue
		}
		n, err := r.loadPath(component, tolerant)
		total += n
		if err != nil && !tolerant {
			return total, err
		}
	}
	return total, nil
}

func (r *Registry) loadPath(path string, tolerant bool) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if tolerant {
			return 0, nil
		}
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	if !info.IsDir() {
		return r.loadFile(path, tolerant)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if tolerant {
			return 0, nil
		}
		return 0, fmt.Errorf("read directory %s: %w", path, err)
	}

	total := 0
	for _, de := range entries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		n, err := r.loadPath(filepath.Join(path, name), tolerant)
		total += n
		if err != nil && !tolerant {
			return total, err
		}
	}
	return total, nil
}

func (r *Registry) loadFile(path string, tolerant bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if tolerant {
			return 0, nil
		}
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return r.LoadConfigStream(string(data)), nil
}

// DerivedConfigEnv is the environment variable name consulted by
// LoadFromEnvironment (spec.md §6).
const DerivedConfigEnv = "DERIVED_CONFIG"

// DefaultConfigDir is the directory LoadFromEnvironment falls back to
// when DERIVED_CONFIG is unset.
const DefaultConfigDir = "/etc/pmderive/derived"

// LoadFromEnvironment implements spec.md §6's DERIVED_CONFIG contract:
// unset loads DefaultConfigDir if it exists; set to the empty string
// loads nothing; set to any other value is treated as a path spec.
func (r *Registry) LoadFromEnvironment() (int, error) {
	val, set := os.LookupEnv(DerivedConfigEnv)
	switch {
	case !set:
		if _, err := os.Stat(DefaultConfigDir); err != nil {
			return 0, nil
		}
		return r.LoadPathSpec(DefaultConfigDir, true)
	case val == "":
		return 0, nil
	default:
		return r.LoadPathSpec(val, true)
	}
}
