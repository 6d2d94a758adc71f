package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultStorageDir       = "cartdata"
	defaultSegmentThreshold = 1000
	defaultMaxSegments      = 10
)

// Config holds the runtime settings for the calculator.
type Config struct {
	StorageDir       string
	SegmentThreshold int
	MaxSegments      int
	SyncOnWrite      bool
	Ephemeral        bool
}

type configYaml struct {
	StorageDir       string `yaml:"storage_dir,omitempty"`
	SegmentThreshold int    `yaml:"segment_threshold,omitempty"`
	MaxSegments      int    `yaml:"max_segments,omitempty"`
	SyncOnWrite      *bool  `yaml:"sync_on_write,omitempty"`
	Ephemeral        bool   `yaml:"ephemeral,omitempty"`
}

// Get reads configuration from CLI flags, or from a yaml file when
// --config is given.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	storageDir := flag.String("storage-dir", defaultStorageDir, "directory for persisted cart data")
	sync := flag.Bool("sync", true, "fsync storage on every write")
	ephemeral := flag.Bool("ephemeral", false, "keep everything in memory, persist nothing")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return Config{
		StorageDir:       *storageDir,
		SegmentThreshold: defaultSegmentThreshold,
		MaxSegments:      defaultMaxSegments,
		SyncOnWrite:      *sync,
		Ephemeral:        *ephemeral,
	}, nil
}

func getYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw configYaml
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Config{
		StorageDir:       raw.StorageDir,
		SegmentThreshold: raw.SegmentThreshold,
		MaxSegments:      raw.MaxSegments,
		SyncOnWrite:      true,
		Ephemeral:        raw.Ephemeral,
	}

	if cfg.StorageDir == "" {
		cfg.StorageDir = defaultStorageDir
	}
	if cfg.SegmentThreshold <= 0 {
		cfg.SegmentThreshold = defaultSegmentThreshold
	}
	if cfg.MaxSegments <= 0 {
		cfg.MaxSegments = defaultMaxSegments
	}
	if raw.SyncOnWrite != nil {
		cfg.SyncOnWrite = *raw.SyncOnWrite
	}

	return cfg, nil
}
