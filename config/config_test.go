package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()
	cfg := LoadConfig()
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.UploadDir != "/tmp/papermorph/uploads" {
		t.Errorf("expected default upload dir, got %s", cfg.UploadDir)
	}
	if cfg.MaxUploadSize != 50*1024*1024 {
		t.Errorf("expected default max upload size 50MB, got %d", cfg.MaxUploadSize)
	}
	if cfg.Wkhtmltopdf != "" {
		t.Errorf("expected wkhtmltopdf to default to PATH lookup, got %s", cfg.Wkhtmltopdf)
	}
	if cfg.Debug {
		t.Error("expected debug to default to false")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PAPERMORPH_PORT", "9100")
	t.Setenv("PAPERMORPH_UPLOAD_DIR", "/var/papermorph")
	t.Setenv("PAPERMORPH_MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("PAPERMORPH_WKHTMLTOPDF", "/opt/bin/wkhtmltopdf")
	t.Setenv("PAPERMORPH_DEBUG", "true")

	cfg := LoadConfig()
	if cfg.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Port)
	}
	if cfg.UploadDir != "/var/papermorph" {
		t.Errorf("expected upload dir override, got %s", cfg.UploadDir)
	}
	if cfg.MaxUploadSize != 1048576 {
		t.Errorf("expected max upload size 1048576, got %d", cfg.MaxUploadSize)
	}
	if cfg.Wkhtmltopdf != "/opt/bin/wkhtmltopdf" {
		t.Errorf("expected wkhtmltopdf override, got %s", cfg.Wkhtmltopdf)
	}
	if !cfg.Debug {
		t.Error("expected debug override to true")
	}
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	os.Clearenv()
	t.Setenv("PAPERMORPH_PORT", "not-a-number")
	t.Setenv("PAPERMORPH_MAX_UPLOAD_SIZE", "huge")
	t.Setenv("PAPERMORPH_DEBUG", "maybe")

	cfg := LoadConfig()
	if cfg.Port != 8000 {
		t.Errorf("expected invalid port to be ignored, got %d", cfg.Port)
	}
	if cfg.MaxUploadSize != 50*1024*1024 {
		t.Errorf("expected invalid size to be ignored, got %d", cfg.MaxUploadSize)
	}
	if cfg.Debug {
		t.Error("expected invalid debug value to be ignored")
	}
}
