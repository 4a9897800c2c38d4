package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
)

const defaultFileName = "key.json"

// Config is the on-disk credentials record. The yaml tags match the toolkit shotgun.yml layout.
type Config struct {
	APIKey    string `json:"api_key" yaml:"api_key"`
	APIScript string `json:"api_script" yaml:"api_script"`
	Host      string `json:"host" yaml:"host"`
}

// DefaultPath returns key.json next to the running executable.
func DefaultPath() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate executable")
	}
	return filepath.Join(filepath.Dir(executable), defaultFileName), nil
}

func Load(filePath string) (model.Credentials, error) {
	configBody, err := os.ReadFile(filePath)
	if err != nil {
		return model.Credentials{}, errors.Wrapf(err, "failed to read credentials file: %v", filePath)
	}
	config, err := Parse(configBody, filepath.Ext(filePath))
	if err != nil {
		return model.Credentials{}, errors.Wrapf(err, "invalid credentials file %v", filePath)
	}
	return config, nil
}

// Parse decodes a credentials record, as YAML for .yml/.yaml extensions and as JSON otherwise.
func Parse(data []byte, ext string) (model.Credentials, error) {
	var config Config
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return model.Credentials{}, errors.Wrap(err, "failed to unmarshal yaml credentials")
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return model.Credentials{}, errors.Wrap(err, "failed to unmarshal json credentials")
		}
	}
	if err := assertRequired(config); err != nil {
		return model.Credentials{}, err
	}
	return mapToCredentials(config), nil
}

func mapToCredentials(config Config) model.Credentials {
	return model.Credentials{
		APIKey:    config.APIKey,
		APIScript: config.APIScript,
		Host:      strings.TrimRight(config.Host, "/"),
	}
}

func assertRequired(config Config) error {
	var missing []string
	if config.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if config.APIScript == "" {
		missing = append(missing, "api_script")
	}
	if config.Host == "" {
		missing = append(missing, "host")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %v", strings.Join(missing, ", "))
	}
	return nil
}
