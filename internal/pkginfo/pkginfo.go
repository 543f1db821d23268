// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package pkginfo reports the name and version of a Go module.
package pkginfo

import (
	"errors"
	"fmt"
	"os"
	"path"
	"runtime/debug"

	"golang.org/x/mod/modfile"
)

// Info describes a module.
type Info struct {
	Path    string // module path, e.g. "github.com/creachadair/jtok"
	Version string // module version, or "(devel)" if unknown
}

// Name returns the last element of the module path.
func (i Info) Name() string { return path.Base(i.Path) }

func (i Info) String() string { return i.Name() + " " + i.Version }

// ReadModFile reads the go.mod file at filePath and reports the module it
// declares. The version of a module read from source is "(devel)".
func ReadModFile(filePath string) (Info, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Info{}, err
	}
	return ParseModFile(filePath, data)
}

// ParseModFile parses data as the contents of a go.mod file. The filePath
// is used only in error messages.
func ParseModFile(filePath string, data []byte) (Info, error) {
	f, err := modfile.ParseLax(filePath, data, nil)
	if err != nil {
		return Info{}, fmt.Errorf("parse %s: %w", filePath, err)
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return Info{}, fmt.Errorf("parse %s: %w", filePath, errNoModule)
	}
	return Info{Path: f.Module.Mod.Path, Version: "(devel)"}, nil
}

var errNoModule = errors.New("no module directive")

// Current reports the main module of the running binary, from its build
// information. The second result is false if build information is not
// available.
func Current() (Info, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Path == "" {
		return Info{}, false
	}
	info := Info{Path: bi.Main.Path, Version: bi.Main.Version}
	if info.Version == "" {
		info.Version = "(devel)"
	}
	return info, true
}
