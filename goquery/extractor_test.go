package goquery_test

import (
	"testing"

	"github.com/fwojciec/jpcorpus/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	t.Run("strips markup and collects text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>今日は良い天気です。</p> <p>散歩に行きました。</p></body></html>`

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "今日は良い天気です。 散歩に行きました。", got)
	})

	t.Run("skips excluded subtrees entirely", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<header>サイトのヘッダー <a href="/">ホーム</a></header>
<nav><ul><li>メニュー1</li><li>メニュー2</li></ul></nav>
<script>var x = "ノイズ";</script>
<style>.hidden { display: none; }</style>
<p>本文だけが残ります。</p>
<footer>著作権表示</footer>
</body></html>`

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "本文だけが残ります。", got)
	})

	t.Run("excluded tags match regardless of markup case", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><SCRIPT>noise();</SCRIPT><p>残る文</p><NAV>メニュー</NAV></body></html>`

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "残る文", got)
	})

	t.Run("collapses whitespace runs to a single space", func(t *testing.T) {
		t.Parallel()

		html := "<p>一行目\n\n\t  二行目　　三行目</p>"

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "一行目 二行目 三行目", got)
	})

	t.Run("is idempotent on already-clean text", func(t *testing.T) {
		t.Parallel()

		clean := "マークアップのない文章です。そのまま残ります。"

		once, err := e.Extract(clean)
		require.NoError(t, err)
		assert.Equal(t, clean, once)

		twice, err := e.Extract(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("tolerates malformed HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>閉じタグのない段落<div>入れ子の<b>乱れ</p></div>`

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, got, "閉じタグのない段落")
		assert.Contains(t, got, "乱れ")
	})
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trims leading and trailing whitespace",
			in:   "  前後の空白  ",
			want: "前後の空白",
		},
		{
			name: "collapses ideographic spaces",
			in:   "単語　　単語",
			want: "単語 単語",
		},
		{
			name: "folds fullwidth latin to ascii",
			in:   "ＡＢＣ１２３",
			want: "ABC123",
		},
		{
			name: "folds halfwidth katakana to fullwidth",
			in:   "ｶﾀｶﾅ",
			want: "カタカナ",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace-only input",
			in:   " \n\t ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.NormalizeText(tt.in))
		})
	}
}
