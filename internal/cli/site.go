package cli

import (
	"path/filepath"

	"github.com/aidanlsb/navport/internal/audit"
	"github.com/aidanlsb/navport/internal/config"
	"github.com/aidanlsb/navport/internal/store"
)

// siteContext bundles what site-level commands need.
type siteContext struct {
	Path   string
	Config *config.SiteConfig
	DB     *store.Database
	Audit  *audit.Logger
}

// openSite loads site.yaml, applies NAVPORT_* overrides from the environment
// and .env, and opens the content store for the resolved site.
// Returned errors are already shaped for output.
func openSite() (*siteContext, error) {
	path := getSitePath()

	siteCfg, err := config.LoadSiteConfig(path)
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, "Fix site.yaml and try again")
	}
	envs, err := config.LoadSiteEnv(path, nil)
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, "Fix "+config.EnvFile+" and try again")
	}
	siteCfg.ApplyEnv(envs)

	db, err := store.Open(path)
	if err != nil {
		return nil, handleError(ErrDatabaseError, err, "")
	}

	return &siteContext{
		Path:   path,
		Config: siteCfg,
		DB:     db,
		Audit:  audit.New(filepath.Join(path, store.DirName), siteCfg.IsAuditEnabled()),
	}, nil
}

func (s *siteContext) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
