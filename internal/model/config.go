package model

// Config holds the complete probatio configuration
type Config struct {
	Trust      TrustConfig      `yaml:"trust" mapstructure:"trust"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Detection  DetectionConfig  `yaml:"detection" mapstructure:"detection"`
	Sweep      SweepConfig      `yaml:"sweep" mapstructure:"sweep"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// TrustConfig controls trust score decay
type TrustConfig struct {
	DegradationRatePerHour float64 `yaml:"degradation_rate_per_hour" mapstructure:"degradation_rate_per_hour"` // linear decay applied per hour
}

// ExtractionConfig toggles the fact extractor families
type ExtractionConfig struct {
	Amounts           bool    `yaml:"amounts" mapstructure:"amounts"`
	Dates             bool    `yaml:"dates" mapstructure:"dates"`
	Persons           bool    `yaml:"persons" mapstructure:"persons"`
	Locations         bool    `yaml:"locations" mapstructure:"locations"`
	Statements        bool    `yaml:"statements" mapstructure:"statements"`
	MinimumConfidence float64 `yaml:"minimum_confidence" mapstructure:"minimum_confidence"` // facts below this are dropped
}

// DetectionConfig controls the contradiction detectors
type DetectionConfig struct {
	MinimumConfidence float64 `yaml:"minimum_confidence" mapstructure:"minimum_confidence"` // contradictions below this are dropped
}

// SweepConfig bounds case-wide contradiction sweeps
type SweepConfig struct {
	Workers        int     `yaml:"workers" mapstructure:"workers"`                   // concurrent detection workers
	MaxPairs       int     `yaml:"max_pairs" mapstructure:"max_pairs"`               // 0 = unlimited
	PairsPerSecond float64 `yaml:"pairs_per_second" mapstructure:"pairs_per_second"` // 0 = unthrottled
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// StoreConfig tunes the in-memory collaborator store
type StoreConfig struct {
	TTLMinutes     int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`         // 0 = records never expire
	CleanupMinutes int `yaml:"cleanup_minutes" mapstructure:"cleanup_minutes"` // expired-record janitor interval
}

// LoggingConfig bounds the injected log sink
type LoggingConfig struct {
	RingSize int  `yaml:"ring_size" mapstructure:"ring_size"` // most recent entries retained
	Forward  bool `yaml:"forward" mapstructure:"forward"`     // also forward entries to slog
}

// LLMConfig configures the optional narrative summarizer.
// Summaries never affect any score.
type LLMConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model           string `yaml:"model" mapstructure:"model"`
	APIKey          string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	Timeout         int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens       int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictCitations bool   `yaml:"strict_citations" mapstructure:"strict_citations"` // enforce evidence-id allowlist
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // json, yaml, markdown
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Trust: TrustConfig{
			DegradationRatePerHour: DefaultDegradationRate,
		},
		Extraction: ExtractionConfig{
			Amounts:           true,
			Dates:             true,
			Persons:           true,
			Locations:         true,
			Statements:        true,
			MinimumConfidence: 0.5,
		},
		Detection: DetectionConfig{
			MinimumConfidence: 0.70,
		},
		Sweep: SweepConfig{
			Workers:        4,
			MaxPairs:       0,
			PairsPerSecond: 0,
			Burst:          5,
		},
		Store: StoreConfig{
			TTLMinutes:     0,
			CleanupMinutes: 10,
		},
		Logging: LoggingConfig{
			RingSize: 256,
			Forward:  false,
		},
		LLM: LLMConfig{
			Provider:        "", // Disabled by default
			Timeout:         30,
			MaxTokens:       1000,
			StrictCitations: true,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}
