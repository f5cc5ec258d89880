package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
	flagMode    = flag.String("mode", "", "Interpolation override: linear or step")
	flagNoLoop  = flag.Bool("no-loop", false, "Clamp playback at the clip ends instead of wrapping")
	flagWorkers = flag.Int("workers", -1, "Goroutines used to sample a pose (-1 keeps config)")
	flagFPS     = flag.Int("fps", 0, "Frame rate for dump and glTF resampling")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMode != "" {
		cfg.Playback.Interpolation = *flagMode
	}
	if *flagNoLoop {
		cfg.Playback.Loop = false
	}
	if *flagWorkers >= 0 {
		cfg.Playback.Workers = *flagWorkers
	}
	if *flagFPS > 0 {
		cfg.Playback.FPS = *flagFPS
	}
}
