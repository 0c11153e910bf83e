// Package config loads kanastudy settings from YAML and the environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Study      StudyConfig      `yaml:"study"`
}

// StoreConfig selects where the vocabulary lives.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"json"`
	Path    string `yaml:"path"    env:"STORE_PATH"    env-default:"data/word_list.json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DictionaryConfig points at the JMdict-simplified file.
type DictionaryConfig struct {
	Path string `yaml:"path" env:"DICTIONARY_PATH" env-default:"jmdict-eng-common.json"`
}

// FetchConfig bounds downloads of URL sources.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"        env:"FETCH_TIMEOUT"        env-default:"30s"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"FETCH_MAX_BODY_BYTES" env-default:"10485760"`
	Workers      int           `yaml:"workers"        env:"FETCH_WORKERS"        env-default:"4"`
}

// StudyConfig holds study session defaults.
type StudyConfig struct {
	SampleSize int `yaml:"sample_size" env:"STUDY_SAMPLE_SIZE" env-default:"10"`
}
