// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package config loads tokenizer settings for the jtok command from a
// configuration file.
//
// The file format is HuJSON, JSON extended with comments and trailing
// commas:
//
//	{
//	  // Deliver long strings in pieces of at most this many characters.
//	  "bufferSize": 4096,
//	  "strictNumbers": true,
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/creachadair/jtok"
	"github.com/tailscale/hujson"
)

// Config records settings for the jtok command.
type Config struct {
	// BufferSize is the maximum number of characters per string chunk.
	// Zero means the tokenizer default.
	BufferSize int `json:"bufferSize,omitempty"`

	// StrictNumbers rejects redundant leading zeros in numbers.
	StrictNumbers bool `json:"strictNumbers,omitempty"`

	// ChunkSize, if positive, feeds input to the tokenizer in chunks of this
	// many bytes rather than through a buffered reader.
	ChunkSize int `json:"chunkSize,omitempty"`

	// Jobs is the maximum number of files processed concurrently when
	// counting. Zero means one per CPU.
	Jobs int `json:"jobs,omitempty"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses data as a HuJSON configuration. Unknown fields are reported
// as errors.
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports an error if any setting of c is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("invalid bufferSize %d", c.BufferSize))
	}
	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("invalid chunkSize %d", c.ChunkSize))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("invalid jobs %d", c.Jobs))
	}
	return errors.Join(errs...)
}

// Options returns tokenizer options corresponding to c.
func (c *Config) Options() *jtok.Options {
	return &jtok.Options{BufferSize: c.BufferSize, StrictNumbers: c.StrictNumbers}
}
