package config

import (
	"flag"
	"io"
	"os"
	"strconv"
)

// Config holds all configuration for the papermorph service
type Config struct {
	Port          int    `json:"port"`
	UploadDir     string `json:"upload_dir"`
	MaxUploadSize int64  `json:"max_upload_size"`
	Wkhtmltopdf   string `json:"wkhtmltopdf"`
	Debug         bool   `json:"debug"`
	Version       string `json:"version"`
	BuildTime     string `json:"build_time"`
	CommitHash    string `json:"commit_hash"`
}

// LoadConfig loads configuration from CLI flags and environment variables.
// Environment variables take precedence over flags.
func LoadConfig() *Config {
	config := &Config{
		Port:          8000,
		UploadDir:     "/tmp/papermorph/uploads",
		MaxUploadSize: 50 * 1024 * 1024, // 50MB
		Wkhtmltopdf:   "",
		Debug:         false,
	}

	fs := flag.NewFlagSet("papermorph", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&config.Port, "port", config.Port, "Port to listen on")
	fs.StringVar(&config.UploadDir, "upload-dir", config.UploadDir, "Directory for uploaded PDFs")
	fs.Int64Var(&config.MaxUploadSize, "max-upload-size", config.MaxUploadSize, "Maximum upload size in bytes")
	fs.StringVar(&config.Wkhtmltopdf, "wkhtmltopdf", config.Wkhtmltopdf, "Path to the wkhtmltopdf binary (default: resolve from PATH)")
	fs.BoolVar(&config.Debug, "debug", config.Debug, "Enable debug logging")
	_ = fs.Parse(os.Args[1:])

	// Override with environment variables if present
	if val := os.Getenv("PAPERMORPH_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			config.Port = port
		}
	}
	if val := os.Getenv("PAPERMORPH_UPLOAD_DIR"); val != "" {
		config.UploadDir = val
	}
	if val := os.Getenv("PAPERMORPH_MAX_UPLOAD_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.MaxUploadSize = size
		}
	}
	if val := os.Getenv("PAPERMORPH_WKHTMLTOPDF"); val != "" {
		config.Wkhtmltopdf = val
	}
	if val := os.Getenv("PAPERMORPH_DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			config.Debug = debug
		}
	}

	return config
}
