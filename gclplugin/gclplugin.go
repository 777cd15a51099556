package gclplugin

import (
	"fmt"

	"github.com/signcheck/signcheck/signcheck"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"
)

func init() { register.Plugin("signcheck", New) }

// New decodes the linter settings from .golangci.yaml. Unknown domains are rejected here, before any package is
// loaded.
func New(rawSettings any) (register.LinterPlugin, error) {
	settings, err := register.DecodeSettings[Settings](rawSettings)
	if err != nil {
		return nil, fmt.Errorf("signcheck settings: %w", err)
	}

	return Plugin{settings: settings}, nil
}

// Plugin runs SG1000, SG1001 and SG1002.
type Plugin struct {
	settings Settings
}

// GetLoadMode requests type information, which building SSA needs.
func (Plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}

// BuildAnalyzers returns the checks, sharing one sign analysis configured by the settings.
func (p Plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return signcheck.New(p.settings.Options()...), nil
}
