package lingua_test

import (
	"testing"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/lingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Detector implements jpcorpus.LanguageDetector at compile time.
var _ jpcorpus.LanguageDetector = (*lingua.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	// Model loading is the expensive part; share one detector.
	d := lingua.NewDetector()

	t.Run("identifies Japanese prose", func(t *testing.T) {
		t.Parallel()

		lang, ok := d.Detect("今日は朝から雨が降っていたので、家で本を読んで過ごしました。")

		require.True(t, ok)
		assert.Equal(t, "ja", lang)
	})

	t.Run("identifies English prose", func(t *testing.T) {
		t.Parallel()

		lang, ok := d.Detect("The weather was terrible today so I stayed home and read a book.")

		require.True(t, ok)
		assert.Equal(t, "en", lang)
	})

	t.Run("returns no guess for empty input", func(t *testing.T) {
		t.Parallel()

		_, ok := d.Detect("")

		assert.False(t, ok)
	})
}
