package jpcorpus

import (
	"os"

	"gopkg.in/yaml.v3"
)

// PipelineConfig holds the tunable knobs of the classification pipeline.
// Values are fixed for the lifetime of a run; workers share one config by
// read-only reference.
type PipelineConfig struct {
	// MaxRecordsPerFile caps how many records are read from one archive.
	// 0 means unlimited.
	MaxRecordsPerFile int `yaml:"max_records_per_file"`

	// ProgressInterval is how many records pass between progress reports.
	// 0 disables progress reporting.
	ProgressInterval int `yaml:"progress_interval"`

	// DetectPrefixChars is how many characters of cleaned text are handed
	// to the statistical language detector. Counted in runes, never bytes.
	DetectPrefixChars int `yaml:"detect_prefix_chars"`

	// LongSentenceLen is the minimum rune count a sentence segment must
	// exceed for the page to count as prose.
	LongSentenceLen int `yaml:"long_sentence_len"`

	// LongSentenceComma additionally requires the qualifying segment to
	// contain an ideographic comma. The stricter of the two historical
	// filter variants.
	LongSentenceComma bool `yaml:"long_sentence_comma"`

	// NgramSize is the sliding window length of the repetition detector.
	NgramSize int `yaml:"ngram_size"`

	// NgramRepeatThreshold is the maximum tolerated occurrence count of
	// any single window before the page is rejected as repetitive.
	NgramRepeatThreshold int `yaml:"ngram_repeat_threshold"`

	// ScriptMajorityThreshold is how many of the three Japanese script
	// ranges (hiragana, katakana, CJK ideographs) must appear in the raw
	// payload.
	ScriptMajorityThreshold int `yaml:"script_majority_threshold"`

	// DateListThreshold is the maximum tolerated count of YYYY年M月-style
	// date mentions before the page is rejected as an archive link list.
	DateListThreshold int `yaml:"date_list_threshold"`

	// Extractor selects the HTML text extractor: "dom" or "trafilatura".
	Extractor string `yaml:"extractor"`

	// TargetLang is the ISO 639-1 code of the language being collected.
	TargetLang string `yaml:"target_lang"`
}

// Extractor names accepted by PipelineConfig.Extractor.
const (
	ExtractorDOM         = "dom"
	ExtractorTrafilatura = "trafilatura"
)

// DefaultConfig returns the pipeline configuration with default thresholds.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		MaxRecordsPerFile:       0,
		ProgressInterval:        1000,
		DetectPrefixChars:       16,
		LongSentenceLen:         100,
		LongSentenceComma:       true,
		NgramSize:               3,
		NgramRepeatThreshold:    10,
		ScriptMajorityThreshold: 2,
		DateListThreshold:       10,
		Extractor:               ExtractorDOM,
		TargetLang:              "ja",
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *PipelineConfig) Validate() error {
	if c.MaxRecordsPerFile < 0 {
		return Errorf(EINVALID, "max_records_per_file must not be negative")
	}
	if c.DetectPrefixChars <= 0 {
		return Errorf(EINVALID, "detect_prefix_chars must be positive")
	}
	if c.LongSentenceLen <= 0 {
		return Errorf(EINVALID, "long_sentence_len must be positive")
	}
	if c.NgramSize <= 0 {
		return Errorf(EINVALID, "ngram_size must be positive")
	}
	if c.NgramRepeatThreshold <= 0 {
		return Errorf(EINVALID, "ngram_repeat_threshold must be positive")
	}
	if c.ScriptMajorityThreshold < 1 || c.ScriptMajorityThreshold > 3 {
		return Errorf(EINVALID, "script_majority_threshold must be between 1 and 3")
	}
	if c.DateListThreshold < 0 {
		return Errorf(EINVALID, "date_list_threshold must not be negative")
	}
	if c.Extractor != ExtractorDOM && c.Extractor != ExtractorTrafilatura {
		return Errorf(EINVALID, "extractor must be %q or %q", ExtractorDOM, ExtractorTrafilatura)
	}
	if len(c.TargetLang) != 2 {
		return Errorf(EINVALID, "target_lang must be a two-letter code")
	}
	return nil
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (PipelineConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, Errorf(ENOTFOUND, "config file %q: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, Errorf(EINVALID, "config file %q: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
