package config

// Config is the immutable runtime configuration assembled once at startup
// and passed explicitly into the services that need it.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Upload UploadConfig `yaml:"upload"`
	Vision VisionConfig `yaml:"vision"`
}

type ServerConfig struct {
	IP             string   `yaml:"ip"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type UploadConfig struct {
	MaxSizeMB    int `yaml:"max_size_mb"`
	MaxDimension int `yaml:"max_dimension"`
}

// MaxSizeBytes converts the configured megabyte limit to bytes.
func (u UploadConfig) MaxSizeBytes() int64 {
	return int64(u.MaxSizeMB) * 1024 * 1024
}

type VisionConfig struct {
	Type           string  `yaml:"type"`
	ModelName      string  `yaml:"model_name"`
	BaseURL        string  `yaml:"url"`
	APIKey         string  `yaml:"api_key"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8000,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Upload: UploadConfig{
			MaxSizeMB:    10,
			MaxDimension: 2048,
		},
		Vision: VisionConfig{
			Type:           "openai",
			ModelName:      "gpt-4o",
			Temperature:    0.7,
			MaxTokens:      2000,
			TimeoutSeconds: 120,
		},
	}
}
