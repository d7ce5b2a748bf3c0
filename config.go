package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"folio/book"
)

type Config struct {
	ExportDirectory string
	ExportFrames    int
	Direction       book.Direction
	FastDelta       float64
	LeafRatio       book.Ratio
	CoverRatio      book.Ratio
	Debug           bool
	LogFile         string
}

// envConfig holds the FOLIO_* overrides. Zero values leave the rc file
// settings alone.
type envConfig struct {
	Direction    string  `envconfig:"DIRECTION"`
	FastDelta    float64 `envconfig:"FAST_DELTA"`
	LeafRatio    string  `envconfig:"LEAF_RATIO"`
	CoverRatio   string  `envconfig:"COVER_RATIO"`
	ExportDir    string  `envconfig:"EXPORT_DIR"`
	ExportFrames int     `envconfig:"EXPORT_FRAMES"`
	Debug        bool    `envconfig:"DEBUG"`
	Log          string  `envconfig:"LOG"`
}

func defaultConfig() *Config {
	return &Config{
		ExportFrames: defaultExportFrames,
		Direction:    book.LTR,
		FastDelta:    book.DefaultFastDelta,
		LeafRatio:    book.DefaultLeafAspectRatio,
		CoverRatio:   book.DefaultCoverAspectRatio,
	}
}

// loadConfig reads ~/.foliorc and then applies environment overrides.
func loadConfig() (*Config, error) {
	config := defaultConfig()
	if homeDir, err := os.UserHomeDir(); err == nil {
		config.readFile(filepath.Join(homeDir, ".foliorc"), homeDir)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// readFile applies key=value settings from path. Unknown keys and bad
// values are skipped.
func (c *Config) readFile(path, homeDir string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "exportdirectory", "export_directory", "exportdir":
			c.ExportDirectory = expandPath(value, homeDir)
		case "exportframes", "export_frames":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.ExportFrames = n
			}
		case "direction":
			if d, err := book.ParseDirection(value); err == nil {
				c.Direction = d
			}
		case "fastdelta", "fast_delta":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				c.FastDelta = v
			}
		case "leafratio", "leaf_ratio":
			if r, err := parseRatio(value); err == nil {
				c.LeafRatio = r
			}
		case "coverratio", "cover_ratio":
			if r, err := parseRatio(value); err == nil {
				c.CoverRatio = r
			}
		case "debug":
			c.Debug = strings.ToLower(value) == "true"
		case "log", "logfile":
			c.LogFile = expandPath(value, homeDir)
		}
	}
}

func (c *Config) applyEnv() error {
	var env envConfig
	if err := envconfig.Process("folio", &env); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if env.Direction != "" {
		d, err := book.ParseDirection(env.Direction)
		if err != nil {
			return fmt.Errorf("FOLIO_DIRECTION: %w", err)
		}
		c.Direction = d
	}
	if env.FastDelta > 0 {
		c.FastDelta = env.FastDelta
	}
	for _, r := range []struct {
		value string
		dst   *book.Ratio
	}{{env.LeafRatio, &c.LeafRatio}, {env.CoverRatio, &c.CoverRatio}} {
		if r.value == "" {
			continue
		}
		ratio, err := parseRatio(r.value)
		if err != nil {
			return err
		}
		*r.dst = ratio
	}
	if env.ExportDir != "" {
		c.ExportDirectory = env.ExportDir
	}
	if env.ExportFrames > 0 {
		c.ExportFrames = env.ExportFrames
	}
	if env.Debug {
		c.Debug = true
	}
	if env.Log != "" {
		c.LogFile = env.Log
	}
	return nil
}

// parseRatio parses "W:H".
func parseRatio(s string) (book.Ratio, error) {
	w, h, ok := strings.Cut(s, ":")
	if !ok {
		return book.Ratio{}, fmt.Errorf("ratio %q: want W:H", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return book.Ratio{}, fmt.Errorf("ratio %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return book.Ratio{}, fmt.Errorf("ratio %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return book.Ratio{}, fmt.Errorf("ratio %q: must be positive", s)
	}
	return book.Ratio{Width: width, Height: height}, nil
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the export directory, creating it if
// needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}
