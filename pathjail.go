package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathJail confines every resolved filesystem path to descendants of a root
// directory. Syntactic checks (`..`, absolute segments) run per segment
// before any filesystem call; only the final candidate is canonicalized and
// range-checked, so rejection of hostile input never costs a stat.
type PathJail struct {
	root     string
	maxDepth int
}

// NewPathJail resolves the root once (following symlinks) and fixes the
// maximum component depth for every later resolution.
func NewPathJail(root string, maxDepth int) (*PathJail, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid jail root %q: %v", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &PathJail{root: abs, maxDepth: maxDepth}, nil
}

// Root returns the resolved jail root.
func (j *PathJail) Root() string {
	return j.root
}

// Resolve joins the segments onto the jail root and validates the result.
func (j *PathJail) Resolve(segments ...string) (string, error) {
	return j.resolveAt(j.root, segments)
}

// ResolveFrom joins the segments onto an absolute base directory that is
// already inside the jail (typically the shell's working directory) and
// validates the result against the jail root.
func (j *PathJail) ResolveFrom(base string, segments ...string) (string, error) {
	if base == "" {
		base = j.root
	}
	return j.resolveAt(base, segments)
}

func (j *PathJail) resolveAt(base string, segments []string) (string, error) {
	candidate := base
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if err := checkSegment(seg); err != nil {
			return "", err
		}
		candidate = filepath.Join(candidate, filepath.Clean(seg))
	}

	if j.maxDepth > 0 && pathDepth(candidate) > j.maxDepth {
		return "", securityError(candidate, fmt.Sprintf("path exceeds maximum depth of %d", j.maxDepth))
	}

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", securityError(candidate, fmt.Sprintf("cannot canonicalize path: %v", err))
	}

	rel, err := filepath.Rel(j.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", securityError(resolved, "path outside allowed root")
	}

	return resolved, nil
}

// checkSegment rejects parent references and host-absolute segments without
// touching the filesystem.
func checkSegment(seg string) error {
	if filepath.IsAbs(seg) || filepath.VolumeName(seg) != "" || strings.HasPrefix(seg, `\\`) {
		return securityError(seg, "absolute path segment not allowed")
	}
	cleaned := filepath.Clean(seg)
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return securityError(seg, "parent directory reference not allowed")
		}
	}
	return nil
}

// resolveExisting canonicalizes symlinks on the deepest existing ancestor of
// path and re-appends the non-existing remainder, so paths that are about to
// be created still get a meaningful containment check.
func resolveExisting(path string) (string, error) {
	var remainder []string
	p := path
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			if len(remainder) == 0 {
				return resolved, nil
			}
			return filepath.Join(append([]string{resolved}, remainder...)...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path, nil
		}
		remainder = append([]string{filepath.Base(p)}, remainder...)
		p = parent
	}
}

func pathDepth(path string) int {
	cleaned := filepath.Clean(path)
	parts := strings.Split(cleaned, string(filepath.Separator))
	depth := 0
	for _, part := range parts {
		if part != "" {
			depth++
		}
	}
	return depth
}
