package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if c.Output.Quality == 0 {
		c.Output.Quality = defaultQuality
	}
	if c.Run.Workers == 0 {
		c.Run.Workers = defaultWorkers
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Output.PicturesDir) == "" {
		c.Output.PicturesDir = defaultPicturesDir
	}
	if c.Output.PicturesDir, err = expandPath(strings.TrimSpace(c.Output.PicturesDir)); err != nil {
		return fmt.Errorf("output.pictures_dir: %w", err)
	}
	if strings.TrimSpace(c.Library.Dir) == "" {
		c.Library.Dir = defaultLibraryDir
	}
	if c.Library.Dir, err = expandPath(strings.TrimSpace(c.Library.Dir)); err != nil {
		return fmt.Errorf("library.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
