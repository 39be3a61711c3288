package classpool

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	cf "github.com/dhamidi/classref/classfile"
)

var log = commonlog.GetLogger("classref.classpool")

// Loader reads classes from directories, .class files and .jar or .zip
// archives. Class files are parsed concurrently and added to the pool in
// a stable order; the first class loaded under a name wins.
type Loader struct {
	// Parallelism bounds the number of class files parsed at once. Zero
	// means GOMAXPROCS.
	Parallelism int
	// Options are passed to the class file reader, for example
	// classfile.AsLibrary() when loading a library pool.
	Options []cf.ParseOption
}

type source struct {
	origin string
	open   func() (io.ReadCloser, error)
}

// Load reads every class under paths into pool. Unreadable files are
// errors; class files that fail to parse are logged and skipped.
func (l *Loader) Load(ctx context.Context, pool *ClassPool, paths ...string) error {
	var sources []source
	var archives []io.Closer
	defer func() {
		for _, a := range archives {
			a.Close()
		}
	}()

	for _, path := range paths {
		srcs, closers, err := collect(path)
		archives = append(archives, closers...)
		if err != nil {
			return err
		}
		sources = append(sources, srcs...)
	}

	classes := make([]*cf.Class, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism())
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readSource(src)
			if err != nil {
				return err
			}
			c, err := cf.Parse(bytes.NewReader(data), l.Options...)
			if err != nil {
				log.Warningf("skipping %s: %s", src.origin, err)
				return nil
			}
			classes[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	added := 0
	for i, c := range classes {
		if c == nil {
			continue
		}
		if pool.Get(c.Name()) != nil {
			log.Debugf("duplicate class %s in %s", c.Name(), sources[i].origin)
			continue
		}
		pool.Add(c)
		added++
	}
	log.Infof("loaded %d classes from %d files", added, len(sources))
	return nil
}

func (l *Loader) parallelism() int {
	if l.Parallelism > 0 {
		return l.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

func readSource(src source) ([]byte, error) {
	rc, err := src.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.origin, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.origin, err)
	}
	return data, nil
}

func collect(path string) ([]source, []io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return collectFile(path)
	}

	var sources []source
	var closers []io.Closer
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isClassContainer(p) {
			return nil
		}
		srcs, cls, err := collectFile(p)
		closers = append(closers, cls...)
		sources = append(sources, srcs...)
		return err
	})
	if err != nil {
		return nil, closers, fmt.Errorf("walk %s: %w", path, err)
	}
	return sources, closers, nil
}

func isClassContainer(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".class", ".jar", ".zip":
		return true
	}
	return false
}

func collectFile(path string) ([]source, []io.Closer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".class":
		return []source{{
			origin: path,
			open:   func() (io.ReadCloser, error) { return os.Open(path) },
		}}, nil, nil
	case ".jar", ".zip":
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive %s: %w", path, err)
		}
		var sources []source
		for _, f := range r.File {
			if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
				continue
			}
			sources = append(sources, source{
				origin: path + "!/" + f.Name,
				open:   f.Open,
			})
		}
		log.Debugf("archive %s: %d class files", path, len(sources))
		return sources, []io.Closer{r}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", path)
	}
}
