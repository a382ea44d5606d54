package main

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"github.com/tiercache/tiercache"
	"github.com/tiercache/tiercache/internal/util"
)

type benchConfig struct {
	FastCapacity   int    `json:"fast-capacity,omitempty"`
	MediumCapacity int    `json:"medium-capacity,omitempty"`
	SlowCapacity   int    `json:"slow-capacity,omitempty"`
	DefaultTTL     string `json:"default-ttl,omitempty"` // duration, e.g. "500ms"
	SweepInterval  string `json:"sweep-interval,omitempty"`
	Ops            int    `json:"ops,omitempty"`
	Keys           int    `json:"keys,omitempty"`
	WritePercent   int    `json:"write-percent,omitempty"`
	LogLevel       string `json:"log-level,omitempty"`
}

func defaultBenchConfig() *benchConfig {
	return &benchConfig{
		FastCapacity:   tiercache.DefaultFastCapacity,
		MediumCapacity: tiercache.DefaultMediumCapacity,
		SlowCapacity:   tiercache.DefaultSlowCapacity,
		DefaultTTL:     "500ms",
		SweepInterval:  "100ms",
		Ops:            1_000_000,
		Keys:           10_000,
		WritePercent:   20,
		LogLevel:       "info",
	}
}

func loadConfigFile(path string) (*benchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config file read")
	}
	conf := &benchConfig{}
	if err := json.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrap(err, "config file parse")
	}
	return conf, nil
}

// merge overrides def fields with non-zero override fields.
// Config values merge rules: config file value overrides default,
// command line value overrides any.
func merge(def, override *benchConfig) {
	defVal := reflect.ValueOf(def).Elem()
	overrideVal := reflect.ValueOf(override).Elem()
	for i, end := 0, defVal.NumField(); i < end; i++ {
		overrideVal := overrideVal.Field(i)
		if !util.IsZeroVal(overrideVal) {
			defVal.Field(i).Set(overrideVal)
		}
	}
}

type runConfig struct {
	cache         tiercache.Config
	sweepInterval time.Duration
	ops           int
	keys          int
	writePercent  int
	logLevel      string
}

func parse(conf *benchConfig) (rc runConfig, err error) {
	rc.cache.FastCapacity = conf.FastCapacity
	rc.cache.MediumCapacity = conf.MediumCapacity
	rc.cache.SlowCapacity = conf.SlowCapacity
	rc.cache.DefaultTTL, err = time.ParseDuration(conf.DefaultTTL)
	if err != nil {
		return rc, errors.Wrap(err, "default-ttl parse")
	}
	rc.sweepInterval, err = time.ParseDuration(conf.SweepInterval)
	if err != nil {
		return rc, errors.Wrap(err, "sweep-interval parse")
	}
	if conf.Ops <= 0 {
		return rc, errors.New("ops must be positive")
	}
	if conf.Keys <= 0 {
		return rc, errors.New("keys must be positive")
	}
	if conf.WritePercent < 0 || conf.WritePercent > 100 {
		return rc, errors.New("write-percent must be within [0, 100]")
	}
	rc.ops = conf.Ops
	rc.keys = conf.Keys
	rc.writePercent = conf.WritePercent
	rc.logLevel = conf.LogLevel
	return rc, nil
}
