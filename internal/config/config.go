package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL    = "ws://localhost:3030"
	DefaultSeed         = 1337
	DefaultNodes        = 2500
	DefaultConcepts     = 512
	DefaultPairTarget   = 1000
	DefaultPairAttempts = 10000
	DefaultInjectLines  = 300
	DefaultAudioLines   = 128
	DefaultWebLines     = 600
	DefaultFPS          = 60
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultSynthRate    = 12.0
	DefaultDataDir      = "runs"
)

type Config struct {
	Server  ServerConfig `yaml:"server"`
	Brain   BrainConfig  `yaml:"brain"`
	Lines   LinesConfig  `yaml:"lines"`
	Render  RenderConfig `yaml:"render"`
	Audio   AudioConfig  `yaml:"audio"`
	Synth   SynthConfig  `yaml:"synth"`
	DataDir string       `yaml:"data_dir"`
}

type ServerConfig struct {
	URL string `yaml:"url"`
}

type BrainConfig struct {
	Seed     int64 `yaml:"seed"`
	Nodes    int   `yaml:"nodes"`
	Concepts int   `yaml:"concepts"`
}

// LinesConfig bounds each line layer's per-frame geometry.
type LinesConfig struct {
	PairTarget   int `yaml:"pair_target"`
	PairAttempts int `yaml:"pair_attempts"`
	Inject       int `yaml:"inject"`
	Audio        int `yaml:"audio"`
	Web          int `yaml:"web"`
}

type RenderConfig struct {
	FPS    int  `yaml:"fps"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Bloom  bool `yaml:"bloom"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Gain    float64 `yaml:"gain"`
}

type SynthConfig struct {
	Rate float64 `yaml:"rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: DefaultServerURL,
		},
		Brain: BrainConfig{
			Seed:     DefaultSeed,
			Nodes:    DefaultNodes,
			Concepts: DefaultConcepts,
		},
		Lines: LinesConfig{
			PairTarget:   DefaultPairTarget,
			PairAttempts: DefaultPairAttempts,
			Inject:       DefaultInjectLines,
			Audio:        DefaultAudioLines,
			Web:          DefaultWebLines,
		},
		Render: RenderConfig{
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Bloom:  true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Gain:    1.0,
		},
		Synth: SynthConfig{
			Rate: DefaultSynthRate,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
