// Package project finds the Java source directories of a code base, so
// that a check without explicit paths analyzes sources and skips build
// output.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Layout names the directory convention a project follows.
type Layout string

const (
	// Maven covers Maven and Gradle builds: src/main/java and
	// src/test/java, at the root or in direct subdirectories.
	Maven Layout = "maven"
	// Modules is src/<project>/<module>/module-info.java.
	Modules Layout = "modules"
	// Flat is any other directory; all of it is searched.
	Flat Layout = "flat"
)

// Project represents a Java code base with one or more modules.
type Project struct {
	RootDir string
	Layout  Layout
	Modules []*Module
}

// Module is a unit of sources within a project.
type Module struct {
	Name       string
	SourceDirs []string
	TestDirs   []string
}

// Directories that hold build output or tool state, never sources.
var ignoredDirs = map[string]bool{
	"build":        true,
	"target":       true,
	"out":          true,
	"node_modules": true,
}

// Load detects the layout of the project in rootDir.
func Load(rootDir string) (*Project, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load project: %s is not a directory", rootDir)
	}

	p := &Project{RootDir: rootDir}
	if modules := scanMaven(rootDir); len(modules) > 0 {
		p.Layout, p.Modules = Maven, modules
		return p, nil
	}
	if modules := scanModules(rootDir); len(modules) > 0 {
		p.Layout, p.Modules = Modules, modules
		return p, nil
	}
	p.Layout = Flat
	p.Modules = []*Module{{SourceDirs: []string{rootDir}}}
	return p, nil
}

func scanMaven(rootDir string) []*Module {
	var modules []*Module
	if m := mavenModule("", rootDir); m != nil {
		modules = append(modules, m)
	}
	for _, dir := range subdirs(rootDir) {
		if m := mavenModule(filepath.Base(dir), dir); m != nil {
			modules = append(modules, m)
		}
	}
	return modules
}

func mavenModule(name, dir string) *Module {
	m := &Module{Name: name}
	if main := filepath.Join(dir, "src", "main", "java"); isDir(main) {
		m.SourceDirs = append(m.SourceDirs, main)
	}
	if test := filepath.Join(dir, "src", "test", "java"); isDir(test) {
		m.TestDirs = append(m.TestDirs, test)
	}
	if len(m.SourceDirs) == 0 && len(m.TestDirs) == 0 {
		return nil
	}
	return m
}

// scanModules finds src/<project>/<module> directories that contain a
// module-info.java.
func scanModules(rootDir string) []*Module {
	var modules []*Module
	for _, projectDir := range subdirs(filepath.Join(rootDir, "src")) {
		for _, moduleDir := range subdirs(projectDir) {
			if _, err := os.Stat(filepath.Join(moduleDir, "module-info.java")); err != nil {
				continue
			}
			modules = append(modules, &Module{
				Name:       filepath.Base(projectDir) + "." + filepath.Base(moduleDir),
				SourceDirs: []string{moduleDir},
			})
		}
	}
	return modules
}

// subdirs lists the directories in dir that may hold sources, sorted.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || ignoredDirs[name] {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, name))
	}
	slices.Sort(dirs)
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Module returns the module with the given name, or nil if not found.
func (p *Project) Module(name string) *Module {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Paths returns the directories to analyze, module by module.
func (p *Project) Paths(includeTests bool) []string {
	var paths []string
	for _, m := range p.Modules {
		paths = append(paths, m.SourceDirs...)
		if includeTests {
			paths = append(paths, m.TestDirs...)
		}
	}
	return paths
}
