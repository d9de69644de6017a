// Package instance maps task instance ids to their on-disk trajectory
// files across an ordered list of search roots.
//
// Each root holds one directory per instance, and each instance directory
// holds a "<id>.traj" file. Roots are searched in configuration order and
// the first hit wins, so an instance present under two roots resolves to
// the earlier one.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root is one labeled directory of per-instance subdirectories.
type Root struct {
	Label string
	Path  string
}

// Ref identifies one discovered instance.
type Ref struct {
	Label    string
	ID       string
	TrajPath string
}

// Resolver locates instances under its roots.
type Resolver struct {
	roots []Root
}

// NewResolver returns a Resolver searching roots in the given order.
func NewResolver(roots []Root) *Resolver {
	return &Resolver{roots: roots}
}

// Roots returns the search roots in preference order.
func (r *Resolver) Roots() []Root {
	return r.roots
}

// Dir returns the directory holding the instance's files. When the
// instance is unknown the error lists every location that was searched.
func (r *Resolver) Dir(instanceID string) (string, error) {
	searched := make([]string, 0, len(r.roots))
	for _, root := range r.roots {
		candidate := filepath.Join(root.Path, instanceID)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		searched = append(searched, candidate)
	}
	return "", fmt.Errorf("could not find trajectory directory for %q (looked in: %s)",
		instanceID, strings.Join(searched, ", "))
}

// TrajectoryPath returns the instance's .traj file path, verifying both
// the instance directory and the file itself exist.
func (r *Resolver) TrajectoryPath(instanceID string) (string, error) {
	dir, err := r.Dir(instanceID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, instanceID+".traj")
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", fmt.Errorf("trajectory file not found: %s", path)
	}
	return path, nil
}

// List discovers every instance that has a trajectory file. Roots are
// visited in preference order and each root's children in name order, so
// repeated calls over an unchanged tree return the same sequence. Missing
// roots are skipped; instance directories without a .traj file are
// ignored.
func (r *Resolver) List() ([]Ref, error) {
	var refs []Ref
	for _, root := range r.roots {
		info, err := os.Stat(root.Path)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := os.ReadDir(root.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read root %s: %w", root.Path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			id := entry.Name()
			traj := filepath.Join(root.Path, id, id+".traj")
			if info, err := os.Stat(traj); err == nil && !info.IsDir() {
				refs = append(refs, Ref{Label: root.Label, ID: id, TrajPath: traj})
			}
		}
	}
	return refs, nil
}
