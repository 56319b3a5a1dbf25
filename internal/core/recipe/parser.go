package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// Options 解析器設定
type Options struct {
	NoiseChars     string
	ClosingPhrases []string
	ItemMarker     string
	CanonicalID    bool
}

// DefaultOptions 預設設定
func DefaultOptions() Options {
	return Options{
		NoiseChars:     DefaultNoiseChars,
		ClosingPhrases: append([]string(nil), DefaultClosingPhrases...),
		ItemMarker:     DefaultItemMarker,
	}
}

// Parser Normalizer → Segmenter → Extractor 的管線
// 無共享可變狀態，可同時被多個 goroutine 使用
type Parser struct {
	normalizer  *Normalizer
	segmenter   *Segmenter
	extractor   *Extractor
	fingerprint string
}

// NewParser 依設定創建解析器
func NewParser(opts Options) (*Parser, error) {
	segmenter, err := NewSegmenter(opts.ItemMarker, opts.ClosingPhrases)
	if err != nil {
		return nil, err
	}

	return &Parser{
		normalizer:  NewNormalizer(opts.NoiseChars),
		segmenter:   segmenter,
		extractor:   NewExtractor(opts.CanonicalID),
		fingerprint: fingerprint(opts),
	}, nil
}

// Parse 把原始文字轉成食譜列表，不會回傳錯誤
func (p *Parser) Parse(raw string) *Result {
	spans, err := p.segmenter.Segment(p.normalizer.Normalize(raw))
	if errors.Is(err, ErrNoStructuredContent) {
		return &Result{Recipes: []Recipe{}, Reason: ReasonNoStructuredContent}
	}

	recipes := make([]Recipe, 0, len(spans))
	for _, span := range spans {
		recipes = append(recipes, p.extractor.Extract(span))
	}

	result := &Result{Recipes: recipes}
	if len(recipes) == 0 {
		result.Reason = ReasonEmptyAfterSplit
	}
	return result
}

// Fingerprint 設定的雜湊，設定不同的解析器產生不同的結果
func (p *Parser) Fingerprint() string {
	return p.fingerprint
}

func fingerprint(opts Options) string {
	h := sha256.New()
	h.Write([]byte(opts.NoiseChars))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(opts.ClosingPhrases, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(opts.ItemMarker))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(opts.CanonicalID)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
