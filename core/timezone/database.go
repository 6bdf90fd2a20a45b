package timezone

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/siherrmann/duckling/model"
)

// tzifMagic starts every compiled zone file
var tzifMagic = []byte("TZif")

// Database is an immutable set of zone definitions.
// It is safe for concurrent use once Load returned.
type Database struct {
	path  string
	zones map[string]*time.Location
}

var _ model.ZoneResolver = (*Database)(nil)

// Load reads every compiled zone below path. path is either a tzdata
// directory laid out like /usr/share/zoneinfo or a Go zoneinfo.zip archive.
// Files that are not zone definitions (zone.tab, leapseconds, ...) are skipped.
func Load(path string, logger *slog.Logger) (*Database, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &model.DatabaseLoadError{Path: path, Err: err}
	}

	var zones map[string]*time.Location
	if info.IsDir() {
		zones, err = loadDir(path)
	} else {
		zones, err = loadZip(path)
	}
	if err != nil {
		return nil, &model.DatabaseLoadError{Path: path, Err: err}
	}
	if len(zones) == 0 {
		return nil, &model.DatabaseLoadError{Path: path, Err: errors.New("no zone definitions found")}
	}

	logger.Info("Loaded timezone database", slog.String("path", path), slog.Int("zones", len(zones)))

	return &Database{
		path:  path,
		zones: zones,
	}, nil
}

func loadDir(root string) (map[string]*time.Location, error) {
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	zones := make(map[string]*time.Location)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// Dangling links and unreadable files are not zones
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		addZone(zones, filepath.ToSlash(rel), data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return zones, nil
}

func loadZip(path string) (map[string]*time.Location, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	zones := make(map[string]*time.Location)
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		addZone(zones, f.Name, data)
	}

	return zones, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func addZone(zones map[string]*time.Location, name string, data []byte) {
	if !bytes.HasPrefix(data, tzifMagic) {
		return
	}
	name = strings.TrimPrefix(name, "./")
	loc, err := time.LoadLocationFromTZData(name, data)
	if err != nil {
		return
	}
	zones[name] = loc
}

// Resolve returns the location of name and the name it resolved to.
// Unknown names, and every name on a nil database, resolve to UTC.
func (db *Database) Resolve(name string) (*time.Location, string) {
	name = strings.TrimSpace(name)
	if db != nil {
		if loc, ok := db.zones[name]; ok {
			return loc, name
		}
	}
	return time.UTC, model.UTCZone
}

// Contains reports whether name is a zone of the database
func (db *Database) Contains(name string) bool {
	if db == nil {
		return false
	}
	_, ok := db.zones[name]
	return ok
}

// Len returns the number of zones
func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.zones)
}

// Names returns all zone names sorted
func (db *Database) Names() []string {
	if db == nil {
		return nil
	}
	names := make([]string, 0, len(db.zones))
	for name := range db.zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the location the database was loaded from
func (db *Database) Path() string {
	if db == nil {
		return ""
	}
	return db.path
}
