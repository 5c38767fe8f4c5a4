package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFile is the optional per-site env file.
const EnvFile = ".env"

// Environment variables that override site.yaml.
const (
	EnvBaseURL       = "NAVPORT_BASE_URL"
	EnvImportMode    = "NAVPORT_IMPORT_MODE"
	EnvImportMissing = "NAVPORT_IMPORT_MISSING"
	EnvImportDefault = "NAVPORT_IMPORT_DEFAULT"
	EnvExportMode    = "NAVPORT_EXPORT_MODE"
)

// LoadSiteEnv reads <site>/.env and merges it under the process environment.
// Process variables take precedence. A missing file yields the process
// environment alone.
func LoadSiteEnv(sitePath string, lookup func(string) (string, bool)) (map[string]string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envs := map[string]string{}
	path := filepath.Join(sitePath, EnvFile)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		fileEnvs, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("cannot parse env file %s: %w", path, err)
		}
		envs = fileEnvs
	}

	for _, key := range []string{EnvBaseURL, EnvImportMode, EnvImportMissing, EnvImportDefault, EnvExportMode} {
		if v, ok := lookup(key); ok {
			envs[key] = v
		}
	}
	return envs, nil
}

// ApplyEnv overrides site settings with non-empty NAVPORT_* values.
func (sc *SiteConfig) ApplyEnv(envs map[string]string) {
	set := func(dst *string, key string) {
		if v := envs[key]; v != "" {
			*dst = v
		}
	}
	set(&sc.BaseURL, EnvBaseURL)
	set(&sc.Import.Mode, EnvImportMode)
	set(&sc.Import.Missing, EnvImportMissing)
	set(&sc.Import.Default, EnvImportDefault)
	set(&sc.Export.Mode, EnvExportMode)
}
