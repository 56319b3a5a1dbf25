package recipe

import (
	"regexp"
	"strings"
)

var (
	ingredientSeparator = regexp.MustCompile(`\s*-\s+`)
	stepNumber          = regexp.MustCompile(`\d+\.\s`)
)

// IngredientItems 以連字號把食材拆成清單
func (r Recipe) IngredientItems() []string {
	if r.Ingredients == NotAvailable {
		return []string{}
	}
	items := []string{}
	for _, part := range ingredientSeparator.Split(r.Ingredients, -1) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// InstructionSteps 在每個 "1. " 之類的步驟編號前切開
func (r Recipe) InstructionSteps() []string {
	if r.Instructions == NotAvailable {
		return []string{}
	}

	cuts := []int{0}
	for _, loc := range stepNumber.FindAllStringIndex(r.Instructions, -1) {
		if loc[0] > 0 {
			cuts = append(cuts, loc[0])
		}
	}
	cuts = append(cuts, len(r.Instructions))

	steps := []string{}
	for i := 0; i < len(cuts)-1; i++ {
		step := strings.TrimSpace(r.Instructions[cuts[i]:cuts[i+1]])
		step = strings.TrimSpace(strings.TrimSuffix(step, "---"))
		if step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}
