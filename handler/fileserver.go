package handler

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/freekieb7/basalt/http"
)

// FileServer maps routes to files and directories on disk. Mounts are
// registered before serving and read-only afterwards, like the router.
type FileServer struct {
	mounts map[string]mountPoint
}

type mountPoint struct {
	route       string
	fsPath      string
	isDirectory bool
}

func NewFileServer() *FileServer {
	return &FileServer{
		mounts: make(map[string]mountPoint),
	}
}

func (fs *FileServer) mapRoute(route, fsPath string, isDirectory bool) error {
	route = strings.TrimSuffix(route, "/")

	if existing, found := fs.mounts[route]; found {
		return fmt.Errorf("handler: %s already mapped to %s", route, existing.fsPath)
	}

	fs.mounts[route] = mountPoint{
		route:       route,
		fsPath:      fsPath,
		isDirectory: isDirectory,
	}
	return nil
}

// MapFile serves a single file at an exact route.
func (fs *FileServer) MapFile(route, filePath string) error {
	return fs.mapRoute(route, filePath, false)
}

// MapDir serves the files directly inside dirPath under the route prefix.
// Only the final path element of a request is used, so lookups cannot
// escape the directory.
func (fs *FileServer) MapDir(route, dirPath string) error {
	return fs.mapRoute(route, dirPath, true)
}

// Resolve maps a request path to a file on disk.
func (fs *FileServer) Resolve(requestPath string) (string, error) {
	requestPath = strings.TrimSuffix(requestPath, "/")

	if mp, found := fs.mounts[requestPath]; found && !mp.isDirectory {
		return mp.fsPath, nil
	}

	for _, mp := range fs.mounts {
		if !mp.isDirectory || !strings.HasPrefix(requestPath, mp.route+"/") {
			continue
		}

		name := path.Base(requestPath)
		if name == "." || name == "/" || name == ".." {
			return "", fmt.Errorf("handler: invalid file name in %s", requestPath)
		}
		return filepath.Join(mp.fsPath, name), nil
	}

	return "", fmt.Errorf("handler: no mount for %s", requestPath)
}

// Handler serves resolved files, with the content type derived from the
// file extension. Anything unresolvable or unreadable is a 404.
func (fs *FileServer) Handler() http.Handler {
	return func(req *http.Request) (*http.Response, error) {
		fsPath, err := fs.Resolve(req.Path)
		if err != nil {
			return http.NewResponse().
				WithStatus(http.StatusNotFound).
				WithHTML(fallback404).
				Build()
		}

		data, err := os.ReadFile(fsPath)
		if err != nil {
			return http.NewResponse().
				WithStatus(http.StatusNotFound).
				WithHTML(fallback404).
				Build()
		}

		return http.NewResponse().
			WithBody(data, MimeTypeByExtension(fsPath)).
			Build()
	}
}

// MimeTypeByExtension resolves a content type from a file name.
func MimeTypeByExtension(name string) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		return mimeType
	}
	return "application/octet-stream"
}
