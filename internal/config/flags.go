package config

import (
	"flag"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagAnimated = flag.Bool("animated", false, "Encode every channel as faceVarying indexed")
	flagNoExpand = flag.Bool("no-expand", false, "Disable automatic dimension expansion")
	flagChannels = flag.String("channels", "", "Comma-separated channel selection")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file")
	flagGRF      = flag.String("grf", "", "Read model paths from this GRF archive")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
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
	if *flagAnimated {
		cfg.Translate.Animated = true
	}
	if *flagNoExpand {
		cfg.Translate.AutoExpand = false
	}
	if *flagChannels != "" {
		cfg.Translate.Channels = splitList(*flagChannels)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagGRF != "" {
		cfg.Source.Archive = *flagGRF
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
