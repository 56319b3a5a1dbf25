package recipe

import (
	"regexp"
	"strings"
)

// DefaultNoiseChars 預設的強調符號
const DefaultNoiseChars = "*"

var lineBreakRun = regexp.MustCompile(`\s*\n\s*`)

// Normalizer 清除雜訊字元並把換行壓成單一空白
type Normalizer struct {
	noise *strings.Replacer
}

// NewNormalizer 創建 Normalizer，noiseChars 中每個字元都會被移除
func NewNormalizer(noiseChars string) *Normalizer {
	var pairs []string
	seen := make(map[rune]bool)
	for _, r := range noiseChars {
		if seen[r] {
			continue
		}
		seen[r] = true
		pairs = append(pairs, string(r), "")
	}
	n := &Normalizer{}
	if len(pairs) > 0 {
		n.noise = strings.NewReplacer(pairs...)
	}
	return n
}

// Normalize 對任何輸入都成立，空字串回傳空字串
func (n *Normalizer) Normalize(raw string) string {
	text := raw
	if n.noise != nil {
		text = n.noise.Replace(text)
	}
	text = lineBreakRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
