package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oneconcern/filemon/pkg/core"
	"github.com/oneconcern/filemon/pkg/dlogger"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// configFile holds the session state inside the repository directory
const configFile = "filemon.yaml"

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`         // Contributor name stamped on commits and tags
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`       // Contributor email
	Branch   string `json:"branch" yaml:"branch"`                         // Branch the session operates on
	LogLevel string `json:"loglevel,omitempty" yaml:"loglevel,omitempty"` // Default log level
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setSessionParams(flags *paramsT) {
	if flags.session.branch == "" {
		flags.session.branch = c.Branch
	}
	if flags.session.name == "" {
		flags.session.name = c.Name
	}
	if flags.session.email == "" {
		flags.session.email = c.Email
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

// save rewrites the session state under the repository directory
func (c *CLIConfig) save(dir string) error {
	buf, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFile), buf, 0600)
}

// paramsToRepo opens the repository engine rooted at the --repo directory
func paramsToRepo(params paramsT) (*core.Repo, error) {
	dir := params.root.repoDir
	if _, err := os.Stat(filepath.Join(dir, configFile)); err != nil {
		return nil, fmt.Errorf("%s is not a filemon repository (run \"filemon init\")", dir)
	}
	logger, err := dlogger.GetLogger(logLevel(params))
	if err != nil {
		return nil, err
	}
	stores := core.LocalStores(dir)
	return core.New(
		core.MetaStore(stores.Meta),
		core.BlobStore(stores.Blobs),
		core.Logger(logger),
	), nil
}

func paramsToContributor(params paramsT) (model.Contributor, error) {
	if params.session.name == "" && params.session.email == "" {
		return model.Contributor{},
			fmt.Errorf("no contributor set: run \"filemon set-user <name> --email <email>\"")
	}
	return model.Contributor{Name: params.session.name, Email: params.session.email}, nil
}

func logLevel(params paramsT) string {
	if params.root.logLevel == "" {
		return dlogger.LogLevelInfo
	}
	return params.root.logLevel
}
