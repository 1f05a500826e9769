package pipeline_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/mock"
	"github.com/fwojciec/jpcorpus/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_EnvelopeSplitting(t *testing.T) {
	t.Parallel()

	t.Run("splits on a bare LF blank line", func(t *testing.T) {
		t.Parallel()

		rec := responseRecord("http://example.jp/", "x")
		rec.Body = []byte("HTTP/1.1 200 OK\n\n" + longJapanese)

		p := pipeline.New(jpcorpus.DefaultConfig(), nil, passthroughExtractor(), japaneseDetector())
		_, verdict := p.Process(rec)

		assert.True(t, verdict.Keep)
	})

	t.Run("splits on whichever separator comes first", func(t *testing.T) {
		t.Parallel()

		rec := responseRecord("http://example.jp/", "x")
		rec.Body = []byte("HTTP/1.1 200 OK\n\n" + longJapanese + "\r\n\r\n" + longJapanese)

		var seen string
		extractor := &mock.Extractor{ExtractFn: func(html string) (string, error) {
			seen = html
			return html, nil
		}}
		p := pipeline.New(jpcorpus.DefaultConfig(), nil, extractor, japaneseDetector())
		_, verdict := p.Process(rec)

		require.True(t, verdict.Keep)
		assert.Equal(t, longJapanese+"\r\n\r\n"+longJapanese, seen,
			"everything after the first blank line is payload")
	})
}

func TestPipeline_DeclaredLanguage(t *testing.T) {
	t.Parallel()

	body := "<body><p>" + longJapanese + "</p></body></html>"

	tests := []struct {
		name string
		html string
		want jpcorpus.Reason // "" means kept
	}{
		{"matching language", `<html lang="ja">` + body, ""},
		{"matching region subtag", `<html lang='ja-JP'>` + body, ""},
		{"mismatch double quoted", `<html lang="en">` + body, jpcorpus.ReasonWrongDeclaredLanguage},
		{"mismatch unquoted", `<html lang=en>` + body, jpcorpus.ReasonWrongDeclaredLanguage},
		{"mismatch uppercase markup", `<HTML LANG="EN">` + body, jpcorpus.ReasonWrongDeclaredLanguage},
		{"absent declaration passes", `<html>` + body, ""},
		{"lang on a non-html element is ignored", `<html><body><div lang="en">` + longJapanese + `</div></body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := responseRecord("http://example.jp/", tt.html)
			p := pipeline.New(jpcorpus.DefaultConfig(), nil, passthroughExtractor(), japaneseDetector())
			_, verdict := p.Process(rec)

			if tt.want == "" {
				assert.True(t, verdict.Keep)
			} else {
				assert.Equal(t, tt.want, verdict.Reason)
			}
		})
	}
}

func TestPipeline_ScriptMajority(t *testing.T) {
	t.Parallel()

	// Katakana and kanji with no hiragana: two of the three ranges. Varied
	// clauses, so the repetition gate stays quiet.
	twoScripts := "東京タワー、横浜ランドマーク、大阪城ホール、京都国際マンガミュージアム、" +
		"北海道スキーリゾート、沖縄マリンパーク、名古屋テレビ塔、神戸ポートタワー、" +
		"福岡ドーム、仙台メディアテーク、広島平和記念公園、長崎ハウステンボス。"

	t.Run("two ranges meet the default threshold", func(t *testing.T) {
		t.Parallel()

		p := pipeline.New(jpcorpus.DefaultConfig(), nil, passthroughExtractor(), japaneseDetector())
		_, verdict := p.Process(responseRecord("http://example.jp/", twoScripts))

		assert.True(t, verdict.Keep)
	})

	t.Run("threshold of three demands every range", func(t *testing.T) {
		t.Parallel()

		cfg := jpcorpus.DefaultConfig()
		cfg.ScriptMajorityThreshold = 3

		extractor := passthroughExtractor()
		p := pipeline.New(cfg, nil, extractor, japaneseDetector())
		_, verdict := p.Process(responseRecord("http://example.jp/", twoScripts))

		assert.Equal(t, jpcorpus.ReasonScriptAbsent, verdict.Reason)
		assert.Zero(t, extractor.Calls.Load())
	})
}

func TestPipeline_DateListBoundary(t *testing.T) {
	t.Parallel()

	cfg := jpcorpus.DefaultConfig()
	cfg.DateListThreshold = 5

	atThreshold := longJapanese + strings.Repeat(" 2023年4月", 5)

	p := pipeline.New(cfg, nil, passthroughExtractor(), japaneseDetector())
	_, verdict := p.Process(responseRecord("http://example.jp/", atThreshold))

	assert.True(t, verdict.Keep, "exactly threshold date mentions must pass")
}

func TestPipeline_LongSentenceVariants(t *testing.T) {
	t.Parallel()

	// One 126-rune segment with no ideographic comma.
	noComma := strings.Repeat("句読点のない長い文字列が続く", 9) + "。"

	t.Run("strict variant requires a comma in the segment", func(t *testing.T) {
		t.Parallel()

		p := pipeline.New(jpcorpus.DefaultConfig(), nil, passthroughExtractor(), japaneseDetector())
		_, verdict := p.Process(responseRecord("http://example.jp/", noComma))

		assert.Equal(t, jpcorpus.ReasonNoLongSentence, verdict.Reason)
	})

	t.Run("lenient variant accepts length alone", func(t *testing.T) {
		t.Parallel()

		cfg := jpcorpus.DefaultConfig()
		cfg.LongSentenceComma = false

		p := pipeline.New(cfg, nil, passthroughExtractor(), japaneseDetector())
		_, verdict := p.Process(responseRecord("http://example.jp/", noComma))

		assert.True(t, verdict.Keep)
	})

	t.Run("segments split on newlines too", func(t *testing.T) {
		t.Parallel()

		// The extractor collapses newlines, so feed the text past it.
		extractor := &mock.Extractor{ExtractFn: func(string) (string, error) {
			return "一行目\n" + longJapanese + "\n三行目", nil
		}}
		p := pipeline.New(jpcorpus.DefaultConfig(), nil, extractor, japaneseDetector())
		_, verdict := p.Process(responseRecord("http://example.jp/", longJapanese))

		assert.True(t, verdict.Keep)
	})
}

func TestPipeline_CharacterRepetition(t *testing.T) {
	t.Parallel()

	// Script-dense spam has no word boundaries; repetition must still be
	// caught at character granularity.
	cfg := jpcorpus.DefaultConfig()
	cfg.ScriptMajorityThreshold = 1
	cfg.LongSentenceLen = 5
	cfg.LongSentenceComma = false
	cfg.NgramRepeatThreshold = 4

	p := pipeline.New(cfg, nil, passthroughExtractor(), japaneseDetector())
	_, verdict := p.Process(responseRecord("http://example.jp/", strings.Repeat("今すぐ購入", 5)))

	assert.Equal(t, jpcorpus.ReasonRepetitiveContent, verdict.Reason)
}
