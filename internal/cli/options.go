package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/srcls/internal/config"
	"github.com/vvka-141/srcls/pkg/srcls"
)

// listOptions is the fully resolved configuration for one listing.
type listOptions struct {
	root   string
	policy srcls.ErrorPolicy
}

// resolveOptions layers command line, environment, srcls.yaml and defaults,
// in that order of precedence.
func resolveOptions(args []string, logger srcls.Logger) (listOptions, error) {
	if err := godotenv.Load(); err == nil {
		logger.Verbose("Loaded .env")
	}

	projectCfg, err := loadProjectConfig(listFlags.configPath)
	if err != nil {
		return listOptions{}, err
	}
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	var argRoot string
	if len(args) > 0 {
		argRoot = args[0]
	}

	root := firstNonEmpty(argRoot, os.Getenv(srcls.EnvRoot), projectCfg.Root, srcls.DefaultRoot)
	policyName := firstNonEmpty(listFlags.onError, os.Getenv(srcls.EnvOnError), projectCfg.OnError)

	policy, err := srcls.ParseErrorPolicy(policyName)
	if err != nil {
		return listOptions{}, err
	}

	return listOptions{root: root, policy: policy}, nil
}

// loadProjectConfig loads the explicit config file, or ./srcls.yaml if present.
// Returns nil config if the default file does not exist (not an error).
func loadProjectConfig(explicitPath string) (*config.ProjectConfig, error) {
	if explicitPath != "" {
		cfg, err := config.LoadFile(explicitPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: config file %s not found", srcls.ErrInvalidConfig, explicitPath)
		}
		return cfg, err
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", srcls.ConfigFileName, err)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
