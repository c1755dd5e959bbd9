package render

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResourceResolver maps a relative reference found in the invoice template (the logo)
// to an absolute location. Implementations must be deterministic and must not fetch
// anything over the network.
type ResourceResolver func(ref string) (string, error)

// DirResolver resolves references against baseDir. Absolute paths are cleaned and
// returned as they are; references carrying a URL scheme are rejected.
func DirResolver(baseDir string) ResourceResolver {
	return func(ref string) (string, error) {
		if ref == "" {
			return "", fmt.Errorf("empty resource reference")
		}
		if strings.Contains(ref, "://") {
			return "", fmt.Errorf("resource %q: remote references are not allowed", ref)
		}
		if filepath.IsAbs(ref) {
			return filepath.Clean(ref), nil
		}
		abs, err := filepath.Abs(filepath.Join(baseDir, ref))
		if err != nil {
			return "", fmt.Errorf("resolve resource %q: %w", ref, err)
		}
		return abs, nil
	}
}

// AssetURLResolver maps a relative reference to a URL path under prefix, for pages
// served by the web adapter. Absolute paths, parent traversal and remote references
// are rejected.
func AssetURLResolver(prefix string) ResourceResolver {
	prefix = "/" + strings.Trim(prefix, "/")
	return func(ref string) (string, error) {
		if ref == "" {
			return "", fmt.Errorf("empty resource reference")
		}
		if strings.Contains(ref, "://") {
			return "", fmt.Errorf("resource %q: remote references are not allowed", ref)
		}
		clean := path.Clean("/" + filepath.ToSlash(ref))
		if filepath.IsAbs(ref) || strings.HasPrefix(filepath.ToSlash(ref), "../") || clean == "/" {
			return "", fmt.Errorf("resource %q: not a relative asset path", ref)
		}
		if prefix == "/" {
			return clean, nil
		}
		return prefix + clean, nil
	}
}

// CheckResource resolves ref and confirms the result is a readable file. Callers use
// it at startup so a missing logo shows up before the first render fails.
func CheckResource(resolve ResourceResolver, ref string) error {
	if ref == "" {
		return nil
	}
	p, err := resolve(ref)
	if err != nil {
		return err
	}
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	return f.Close()
}
