package recipe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultItemMarker 項目編號標記的前綴，完整標記為 "### 1."
const DefaultItemMarker = "###"

// DefaultClosingPhrases 生成器常見的結語
var DefaultClosingPhrases = []string{
	`Enjoy!`,
	`Feel free[^.]*\.`,
}

// ErrNoStructuredContent 文字中找不到第一個項目標記
var ErrNoStructuredContent = errors.New("no structured content")

// Segmenter 把正規化後的文字切成每個食譜的片段
type Segmenter struct {
	firstMarker string
	splitter    *regexp.Regexp
	closing     *regexp.Regexp
}

// NewSegmenter 創建 Segmenter
func NewSegmenter(itemMarker string, closingPhrases []string) (*Segmenter, error) {
	itemMarker = strings.TrimSpace(itemMarker)
	if itemMarker == "" {
		return nil, &OptionError{Option: "item_marker", Message: "must not be empty"}
	}

	s := &Segmenter{
		firstMarker: itemMarker + " 1.",
		splitter:    regexp.MustCompile(`\s*` + regexp.QuoteMeta(itemMarker) + `\s*\d+\.\s*`),
	}

	var patterns []string
	for _, p := range closingPhrases {
		if p == "" {
			continue
		}
		if _, err := regexp.Compile(p); err != nil {
			return nil, &OptionError{Option: "closing_phrases", Message: fmt.Sprintf("invalid pattern %q", p), Cause: err}
		}
		patterns = append(patterns, "(?:"+p+")")
	}
	if len(patterns) > 0 {
		s.closing = regexp.MustCompile(strings.Join(patterns, "|"))
	}

	return s, nil
}

// Segment 回傳依出現順序排列的片段；零個片段不是錯誤
func (s *Segmenter) Segment(normalized string) ([]ItemSpan, error) {
	start := strings.Index(normalized, s.firstMarker)
	if start == -1 {
		return nil, fmt.Errorf("missing %q marker: %w", s.firstMarker, ErrNoStructuredContent)
	}

	body := normalized[start:]
	if s.closing != nil {
		body = s.closing.ReplaceAllString(body, "")
	}
	body = strings.TrimSpace(body)

	parts := s.splitter.Split(body, -1)
	spans := make([]ItemSpan, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		spans = append(spans, ItemSpan(part))
	}
	return spans, nil
}
