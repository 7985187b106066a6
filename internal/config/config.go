// Package config handles translator configuration loading and management.
package config

// Config holds all translator settings.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Translate TranslateConfig `yaml:"translate"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig locates input models.
type SourceConfig struct {
	Archive string `yaml:"archive"` // GRF archive to read model paths from (empty = filesystem)
}

// TranslateConfig controls how channels are encoded and decoded.
type TranslateConfig struct {
	AutoExpand  bool     `yaml:"auto_expand"`  // Widen kinds when extra components are non-zero
	Epsilon     float32  `yaml:"epsilon"`      // Threshold for "non-zero" during auto-expand
	Animated    bool     `yaml:"animated"`     // Skip inference, always faceVarying indexed
	Normals     bool     `yaml:"normals"`      // Translate the reserved normals channel
	Channels    []string `yaml:"channels"`     // Channel selection (empty = all)
	UVKind      string   `yaml:"uv_kind"`      // Kind for the uv channel
	ColorKind   string   `yaml:"color_kind"`   // Kind for the color channel
	DefaultKind string   `yaml:"default_kind"` // Kind for every other channel
}

// ExportConfig holds glTF output settings.
type ExportConfig struct {
	Binary    bool   `yaml:"binary"` // Force .glb output regardless of extension
	Generator string `yaml:"generator"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Translate: TranslateConfig{
			AutoExpand:  true,
			Epsilon:     1e-6,
			Animated:    false,
			Normals:     true,
			UVKind:      "texCoord2f",
			ColorKind:   "color3f",
			DefaultKind: "float3",
		},
		Export: ExportConfig{
			Binary:    false,
			Generator: "meshattr",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Selected reports whether a channel passes the channel selection.
func (t TranslateConfig) Selected(name string) bool {
	if len(t.Channels) == 0 {
		return true
	}
	for _, c := range t.Channels {
		if c == name {
			return true
		}
	}
	return false
}
