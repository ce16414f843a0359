// Package retriever fetches raw asset bytes named by resource
// identifiers: plain filesystem paths, file:// and http(s):// URLs,
// and package:// references resolved against a search path.
package retriever

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Retriever resolves resource identifiers to byte buffers. The zero
// value works for local paths; New fills in the defaults for remote
// and package references.
type Retriever struct {
	// Client performs http and https retrievals. Nil means
	// http.DefaultClient; callers needing timeouts supply their own.
	Client *http.Client
	// SearchPath lists the directories package:// references are
	// resolved against.
	SearchPath []string
}

// New returns a retriever using http.DefaultClient and the search path
// from the ROS_PACKAGE_PATH environment variable.
func New() *Retriever {
	return &Retriever{
		Client:     http.DefaultClient,
		SearchPath: searchPathFromEnv(),
	}
}

// searchPathFromEnv splits ROS_PACKAGE_PATH into directories.
func searchPathFromEnv() []string {
	raw := os.Getenv("ROS_PACKAGE_PATH")
	if raw == "" {
		return nil
	}
	var dirs []string
	for _, d := range strings.Split(raw, string(os.PathListSeparator)) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Retrieve fetches the bytes behind a resource identifier. A resource
// that exists but is empty yields an empty buffer and no error; the
// two cases stay distinguishable for callers.
func (r *Retriever) Retrieve(resource string) ([]byte, error) {
	switch {
	case strings.HasPrefix(resource, "http://"), strings.HasPrefix(resource, "https://"):
		return r.retrieveHTTP(resource)
	case strings.HasPrefix(resource, "file://"):
		return readFile(strings.TrimPrefix(resource, "file://"))
	case strings.HasPrefix(resource, "package://"):
		return r.retrievePackage(resource)
	case strings.Contains(resource, "://"):
		return nil, fmt.Errorf("retriever: unsupported scheme in %q", resource)
	default:
		return readFile(resource)
	}
}

func (r *Retriever) retrieveHTTP(url string) ([]byte, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("retriever: get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("retriever: get %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("retriever: read %s: %w", url, err)
	}
	return data, nil
}

// retrievePackage resolves package://<pkg>/<rest> by looking for
// <pkg>/<rest> under each search path directory in order.
func (r *Retriever) retrievePackage(resource string) ([]byte, error) {
	rest := strings.TrimPrefix(resource, "package://")
	pkg, rel, ok := strings.Cut(rest, "/")
	if !ok || pkg == "" || rel == "" {
		return nil, fmt.Errorf("retriever: malformed package reference %q", resource)
	}
	for _, dir := range r.SearchPath {
		path := filepath.Join(dir, pkg, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			return readFile(path)
		}
	}
	return nil, fmt.Errorf("retriever: package %q not found on search path", pkg)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("retriever: %w", err)
	}
	return data, nil
}
