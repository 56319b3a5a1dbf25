package recipe

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRecipes = "Here are some ideas:\n### 1. Pasta Bake\nCooking Time: 30 minutes\nIngredients: - Pasta - Cheese\nInstructions: 1. Boil pasta. 2. Add cheese.\n### 2. Salad\nCooking Time: 10 minutes\nIngredients: - Lettuce\nInstructions: 1. Chop. Enjoy!"

func newDefaultParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestParser_TwoRecipes(t *testing.T) {
	p := newDefaultParser(t)

	result := p.Parse(twoRecipes)
	require.False(t, result.Empty())
	assert.Equal(t, ReasonNone, result.Reason)
	assert.Nil(t, result.Notice())
	assert.Equal(t, []Recipe{
		{ID: "Pasta Bake", Name: "Pasta Bake", CookingTime: "30 minutes", Ingredients: "- Pasta - Cheese", Instructions: "1. Boil pasta. 2. Add cheese."},
		{ID: "Salad", Name: "Salad", CookingTime: "10 minutes", Ingredients: "- Lettuce", Instructions: "1. Chop."},
	}, result.Recipes)
}

func TestParser_NoStructuredContent(t *testing.T) {
	p := newDefaultParser(t)

	for _, in := range []string{"", "I can't help with that.", "1. Pasta Cooking Time: 5"} {
		result := p.Parse(in)
		assert.True(t, result.Empty())
		assert.NotNil(t, result.Recipes)
		assert.Equal(t, ReasonNoStructuredContent, result.Reason)
		require.NotNil(t, result.Notice())
		assert.Equal(t, NoticeInfo, result.Notice().Type)
		assert.Equal(t, "No recipes found in the generated text.", result.Notice().Message)
	}
}

func TestParser_EmptyAfterSplit(t *testing.T) {
	p := newDefaultParser(t)

	result := p.Parse("### 1.\n\n### 2.\nEnjoy!")
	assert.True(t, result.Empty())
	assert.Equal(t, ReasonEmptyAfterSplit, result.Reason)
	require.NotNil(t, result.Notice())
	assert.Equal(t, NoticeInfo, result.Notice().Type)
}

func TestParser_WellFormedNoSentinels(t *testing.T) {
	p := newDefaultParser(t)

	var sb strings.Builder
	sb.WriteString("Sure! Here are five recipes.\n\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "### %d. **Dish %d**\n- **Cooking Time:** %d minutes\n- **Ingredients:**\n  - Item A\n  - Item B\n- **Instructions:**\n  1. Step one.\n  2. Step two.\n\n", i, i, i*10)
	}
	sb.WriteString("Feel free to adjust the seasoning. Enjoy!")

	result := p.Parse(sb.String())
	require.Len(t, result.Recipes, 5)
	for i, r := range result.Recipes {
		assert.Equal(t, fmt.Sprintf("Dish %d", i+1), r.Name)
		assert.Equal(t, fmt.Sprintf("%d minutes", (i+1)*10), r.CookingTime)
		assert.Equal(t, "- Item A - Item B -", r.Ingredients)
		assert.Equal(t, "1. Step one. 2. Step two.", r.Instructions)
		for _, v := range []string{r.ID, r.Name, r.CookingTime, r.Ingredients, r.Instructions} {
			assert.NotEqual(t, NotAvailable, v)
			assert.NotEqual(t, UnknownRecipe, v)
		}
	}
}

func TestParser_OneMalformedItemDoesNotAbortOthers(t *testing.T) {
	p := newDefaultParser(t)

	result := p.Parse("### 1. Broken item with no labels ### 2. Tea Cooking Time: 3 min Ingredients: - Leaves Instructions: Steep.")
	require.Len(t, result.Recipes, 2)
	assert.Equal(t, UnknownRecipe, result.Recipes[0].Name)
	assert.Equal(t, NotAvailable, result.Recipes[0].Ingredients)
	assert.Equal(t, "Tea", result.Recipes[1].Name)
}

func TestParser_CustomOptions(t *testing.T) {
	p, err := NewParser(Options{
		NoiseChars:     "_",
		ClosingPhrases: []string{`Bon appetit!`},
		ItemMarker:     "#",
		CanonicalID:    true,
	})
	require.NoError(t, err)

	result := p.Parse("# 1. _Tea_  Time Cooking Time: 3 min Ingredients: - Leaves Instructions: Steep. Bon appetit!")
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Tea  Time", result.Recipes[0].Name)
	assert.Equal(t, "Tea Time", result.Recipes[0].ID)
	assert.Equal(t, "Steep.", result.Recipes[0].Instructions)

	assert.NotEqual(t, newDefaultParser(t).Fingerprint(), p.Fingerprint())
}

func TestNewParser_InvalidOptions(t *testing.T) {
	_, err := NewParser(Options{ItemMarker: ""})
	var optErr *OptionError
	assert.ErrorAs(t, err, &optErr)
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := newDefaultParser(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := p.Parse(twoRecipes)
			assert.Len(t, result.Recipes, 2)
		}()
	}
	wg.Wait()
}
