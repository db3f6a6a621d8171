package config

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/rupor-github/gencfg"
	"gopkg.in/yaml.v3"

	"github.com/ivikasavnish/scriptgen/pkg/codegen"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ServerConfig struct {
		Listen string `yaml:"listen" validate:"required"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Generator codegen.Options `yaml:"generator"`
		Server    ServerConfig    `yaml:"server"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, validate bool) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration data")
	}
	if validate {
		if err := gencfg.Validate(cfg); err != nil {
			return nil, errors.Wrap(err, "invalid configuration")
		}
	}
	return cfg, nil
}

// LoadConfiguration returns the embedded defaults, overlaid with the file at
// path when one is given
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to process configuration template")
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to process configuration template")
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to process configuration file")
	}
	return cfg, nil
}

// Prepare returns the expanded default configuration
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns the configuration as YAML
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config to yaml")
	}
	return data, nil
}
