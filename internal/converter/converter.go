package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/zagvozdeen/coffeeshop/config"
)

// Generated file names inside a version directory.
const (
	EnvironmentTSFile   = "environment.ts"
	EnvironmentJSONFile = "env.json"
	ReportFile          = "index.html"
	VersionFile         = "version"
)

// ErrInvalidVersion is returned when the version file does not name a generated version.
var ErrInvalidVersion = errors.New("invalid version")

// writeFile is replaced in tests to simulate write failures.
var writeFile = renameio.WriteFile

type Converter struct {
	config      config.Config
	target      string
	dir         string
	version     string
	logger      *slog.Logger
	head        *strings.Builder
	highlighter *Highlighter
}

// New returns a converter writing the artifacts of cfg under dir.
func New(cfg config.Config, dir string) *Converter {
	target := "development"
	if cfg.IsProduction {
		target = "production"
	}
	return &Converter{
		config: cfg,
		target: target,
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		head:   &strings.Builder{},
	}
}

// Version is the version generated by the last successful Run.
func (c *Converter) Version() string {
	return c.version
}

// Run writes a new version of the environment artifacts and makes it current.
// The previously current version is removed.
func (c *Converter) Run() error {
	if !c.config.IsProduction {
		c.logger.Info("You are running in development mode")
	}
	if err := Validate(c.config); err != nil {
		return fmt.Errorf("invalid %s environment: %w", c.target, err)
	}
	uid, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate new version uuid: %w", err)
	}
	c.version = uid.String()
	c.head.Reset()
	c.highlighter, err = NewHighlighter(c.head)
	if err != nil {
		return fmt.Errorf("failed to create highlighter: %w", err)
	}
	versionDir := filepath.Join(c.dir, c.version)
	if err = os.MkdirAll(versionDir, 0o755); err != nil {
		return fmt.Errorf("failed to create version directory: %w", err)
	}
	if err = c.createFiles(versionDir); err != nil {
		c.discard(versionDir)
		return err
	}
	old, err := c.swapVersion()
	if err != nil {
		c.discard(versionDir)
		return err
	}
	if err = c.removeVersion(old); err != nil {
		return err
	}
	c.logger.Info("Conversion completed", "version", c.version, "target", c.target)
	return nil
}

// discard removes a version directory that never became current.
func (c *Converter) discard(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		c.logger.Error("Failed to remove incomplete version", "err", err, "version", c.version)
	}
}

func (c *Converter) removeVersion(old string) error {
	if old == "" || old == c.version {
		return nil
	}
	if err := checkVersion(old); err != nil {
		c.logger.Warn("Previous version left in place", "err", err, "version", old)
		return nil
	}
	if err := os.RemoveAll(filepath.Join(c.dir, old)); err != nil {
		return fmt.Errorf("failed to remove old version: %w", err)
	}
	c.logger.Info("Old version removed", "version", old)
	return nil
}

func (c *Converter) createFiles(dir string) error {
	ts, err := NewEnvironmentTS(c.config)
	if err != nil {
		return err
	}
	if err = writeFile(filepath.Join(dir, EnvironmentTSFile), ts, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", EnvironmentTSFile, err)
	}
	js, err := NewEnvironmentJSON(c.config)
	if err != nil {
		return err
	}
	if err = writeFile(filepath.Join(dir, EnvironmentJSONFile), js, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", EnvironmentJSONFile, err)
	}
	return c.writeReport(filepath.Join(dir, ReportFile), ts)
}

func (c *Converter) writeReport(path string, ts []byte) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if err := f.Cleanup(); err != nil {
			c.logger.Error("Failed to clean up report file", "err", err)
		}
	}()
	if err = c.newReport(f, ts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err = f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace report file: %w", err)
	}
	return nil
}

// swapVersion points the version file at the new version and returns the previous one.
func (c *Converter) swapVersion() (string, error) {
	path := filepath.Join(c.dir, VersionFile)
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read version file: %w", err)
	}
	if err = writeFile(path, []byte(c.version), 0o644); err != nil {
		return "", fmt.Errorf("failed to write version file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// CurrentVersion reads the version made current by the last Run in dir.
func CurrentVersion(dir string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, VersionFile))
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if err = checkVersion(v); err != nil {
		return "", err
	}
	return v, nil
}

// checkVersion accepts only the canonical form of a generated version,
// so a version can always be joined to the dist directory.
func checkVersion(v string) error {
	uid, err := uuid.Parse(v)
	if err != nil || uid.String() != v {
		return fmt.Errorf("%w %q", ErrInvalidVersion, v)
	}
	return nil
}
