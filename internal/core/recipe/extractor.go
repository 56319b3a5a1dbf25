package recipe

import (
	"strings"
)

// labelPos 標籤在片段中的位置，start 為 -1 表示未找到
type labelPos struct {
	start int
	end   int
}

func (p labelPos) found() bool {
	return p.start >= 0
}

// Extractor 從片段中依標籤擷取四個欄位
type Extractor struct {
	canonicalID bool
}

// NewExtractor 創建 Extractor，canonicalID 為 true 時 ID 使用清理後的名稱
func NewExtractor(canonicalID bool) *Extractor {
	return &Extractor{canonicalID: canonicalID}
}

// Extract 永不失敗，缺少的欄位以哨兵值補上
func (e *Extractor) Extract(span ItemSpan) Recipe {
	text := string(span)

	// 每個標籤只找一次，從上一個找到的標籤之後開始找
	cursor := 0
	var positions [3]labelPos
	for i, label := range []string{LabelCookingTime, LabelIngredients, LabelInstructions} {
		positions[i] = labelPos{start: -1, end: -1}
		idx := strings.Index(text[cursor:], label)
		if idx == -1 {
			continue
		}
		start := cursor + idx
		positions[i] = labelPos{start: start, end: start + len(label)}
		cursor = positions[i].end
	}
	cooking, ingredients, instructions := positions[0], positions[1], positions[2]

	rawName, hasName := "", false
	if cooking.found() {
		rawName, hasName = strings.TrimSpace(text[:cooking.start]), true
	}

	r := Recipe{
		Name:         UnknownRecipe,
		CookingTime:  NotAvailable,
		Ingredients:  NotAvailable,
		Instructions: NotAvailable,
	}

	if hasName {
		r.Name = orDefault(stripHyphens(rawName), UnknownRecipe)
	}
	if cooking.found() && ingredients.found() {
		r.CookingTime = orDefault(stripHyphens(text[cooking.end:ingredients.start]), NotAvailable)
	}
	if ingredients.found() && instructions.found() {
		r.Ingredients = orDefault(strings.TrimSpace(text[ingredients.end:instructions.start]), NotAvailable)
	}
	if instructions.found() {
		r.Instructions = orDefault(stripHyphens(text[instructions.end:]), NotAvailable)
	}

	switch {
	case e.canonicalID:
		r.ID = strings.Join(strings.Fields(r.Name), " ")
	case hasName && rawName != "":
		r.ID = rawName
	default:
		r.ID = UnknownRecipe
	}

	return r
}

// stripHyphens 移除所有連字號後修剪空白
func stripHyphens(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
