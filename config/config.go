package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// a type with service configuration parameters
type serviceConfig struct {
	// port on which the service listens
	Port int `yaml:"port"`
	// maximum number of allowed incoming connections
	MaxConnections int `yaml:"max_connections"`
	// period after which an idle wizard session is purged (seconds)
	SessionTtl int `yaml:"session_ttl"`
	// interval at which idle sessions are checked for purging (milliseconds)
	PollInterval int `yaml:"poll_interval"`
	// emit debug-level log messages
	Debug bool `yaml:"debug"`
}

// a type with metadata vocabulary parameters
type vocabularyConfig struct {
	// base IRI prepended to every document property name
	Base string `yaml:"base"`
	// base IRI prepended to every generated instance identifier
	Instances string `yaml:"instances"`
}

// global config variables
var Service serviceConfig
var Vocabulary vocabularyConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service    serviceConfig    `yaml:"service"`
	Vocabulary vocabularyConfig `yaml:"vocabulary"`
}

// This helper reads configuration data, returning an error indicating
// success or failure. All environment variables of the form ${ENV_VAR}
// are expanded.
func readConfig(bytes []byte) error {
	// before we do anything else, expand any provided environment variables
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	conf.Service.SessionTtl = 3600
	conf.Service.PollInterval = 60000
	conf.Vocabulary.Base = "https://openminds.ebrains.eu/vocab/"
	conf.Vocabulary.Instances = "https://kg.ebrains.eu/api/instances/"
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		return fmt.Errorf("Couldn't parse configuration data: %s", err.Error())
	}

	// copy the config data into place
	Service = conf.Service
	Vocabulary = conf.Vocabulary

	return nil
}

// This helper validates the configuration, returning an error that indicates
// success or failure.
func validateConfig() error {
	if Service.Port < 0 || Service.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", Service.Port)
	}
	if Service.MaxConnections <= 0 {
		return fmt.Errorf("Invalid max_connections: %d (must be positive)",
			Service.MaxConnections)
	}
	if Service.SessionTtl <= 0 {
		return fmt.Errorf("Invalid session_ttl: %d (must be positive)",
			Service.SessionTtl)
	}
	if Service.PollInterval <= 0 {
		return fmt.Errorf("Invalid poll_interval: %d (must be positive)",
			Service.PollInterval)
	}
	if Vocabulary.Base == "" {
		return fmt.Errorf("No vocabulary base IRI was provided!")
	}
	if Vocabulary.Instances == "" {
		return fmt.Errorf("No vocabulary instances IRI was provided!")
	}
	return nil
}

// Initializes the metadata wizard configuration using the given YAML byte
// data.
func Init(yamlData []byte) error {
	err := readConfig(yamlData)
	if err != nil {
		return err
	}
	return validateConfig()
}
