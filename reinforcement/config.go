package reinforcement

import (
	"context"
	"path/filepath"
	"time"

	"gridrl/grid_world"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig wraps the config document with a kind selector so unrelated
// documents can share a file format.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// TrainingConfig holds the learning parameters and run selection read from
// yaml. Hyperparameters are a key/val list so new knobs need no schema
// change.
type TrainingConfig struct {
	// HyperParams is a key-val pair of param names and their value.
	HyperParams []HyperParameter `mapstructure:"hyperParams"`
	// Mode selects the run mode and its options.
	Mode map[string]string `mapstructure:"mode"`
	// TrainingDeadline describes when to stop running episodes.
	TrainingDeadline map[string]string `mapstructure:"trainingDeadline"`
}

type HyperParameter struct {
	Key string  `yaml:"key"`
	Val float64 `yaml:"val"`
}

func (cfg *TrainingConfig) GetHyperParamOrDefault(param string, defaultVal float64) float64 {
	for _, kvp := range cfg.HyperParams {
		if kvp.Key == param {
			return kvp.Val
		}
	}
	return defaultVal
}

// RunConfig materializes the learner parameters, with defaults suitable
// for an 8x8 to 20x20 grid.
func (cfg *TrainingConfig) RunConfig() RunConfig {
	return RunConfig{
		Epsilon:        cfg.GetHyperParamOrDefault("epsilon", 0.2),
		Alpha:          cfg.GetHyperParamOrDefault("alpha", 0.1),
		Gamma:          cfg.GetHyperParamOrDefault("gamma", 0.9),
		StepCap:        int(cfg.GetHyperParamOrDefault("stepCap", 400)),
		PortalCooldown: int(cfg.GetHyperParamOrDefault("portalCooldown", 5)),
		Bias:           grid_world.DirNone,
	}
}

// RunMode returns the configured mode, defaulting to playground.
func (cfg *TrainingConfig) RunMode() Mode {
	if name, ok := cfg.Mode["name"]; ok {
		return Mode(name)
	}
	return ModePlayground
}

// WithTrainingDeadline returns a context extended by the training deadline,
// if one is specified.
func (cfg *TrainingConfig) WithTrainingDeadline(
	ctx context.Context,
) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.TrainingDeadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}

// FromYaml reads a TrainingConfig document from the given path.
func FromYaml(path string) (*TrainingConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outerConfig := &OuterConfig{}
	if err := vp.Unmarshal(outerConfig); err != nil {
		return nil, err
	}

	// Round-trip the inner document through yaml to decode it into the
	// typed config.
	doc, err := yaml.Marshal(outerConfig.Def)
	if err != nil {
		return nil, err
	}
	innerConfig := &TrainingConfig{}
	if err := yaml.Unmarshal(doc, innerConfig); err != nil {
		return nil, err
	}

	return innerConfig, nil
}
