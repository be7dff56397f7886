package config

const (
	defaultConfigPath  = "~/.config/spatialtool/config.toml"
	defaultQuality     = 95
	defaultPicturesDir = "~/Pictures"
	defaultLibraryDir  = "~/Pictures/Library"
	defaultWorkers     = 1
	defaultLogFormat   = "auto"
	defaultLogLevel    = "info"

	maxWorkers = 64
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Quality:     defaultQuality,
			PicturesDir: defaultPicturesDir,
		},
		Library: Library{
			Dir: defaultLibraryDir,
		},
		Run: Run{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
