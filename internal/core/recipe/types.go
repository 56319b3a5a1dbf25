package recipe

// 哨兵值
const (
	NotAvailable  = "N/A"
	UnknownRecipe = "Unknown Recipe"
)

// 欄位標籤，依固定順序出現
const (
	LabelCookingTime  = "Cooking Time:"
	LabelIngredients  = "Ingredients:"
	LabelInstructions = "Instructions:"
)

// Recipe 解析後的食譜
// 建立後不再修改，ID 用於相等判斷與去重
type Recipe struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CookingTime  string `json:"cookingTime"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// ItemSpan 單一食譜的原始文字片段（非空）
type ItemSpan string

// Reason 空結果的原因
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonNoStructuredContent Reason = "no_structured_content"
	ReasonEmptyAfterSplit     Reason = "empty_after_split"
)

// Result 解析結果：有食譜的列表，或帶原因的空列表
type Result struct {
	Recipes []Recipe `json:"recipes"`
	Reason  Reason   `json:"reason,omitempty"`
}

// Empty 是否沒有任何食譜
func (r *Result) Empty() bool {
	return len(r.Recipes) == 0
}

// Notice 空結果時給呼叫端的提示，非空時回傳 nil
func (r *Result) Notice() *Notice {
	switch {
	case !r.Empty():
		return nil
	case r.Reason == ReasonNoStructuredContent:
		return &Notice{Message: "No recipes found in the generated text.", Type: NoticeInfo}
	default:
		return &Notice{Message: "Something went wrong, just hit the enter to search the term again :)", Type: NoticeInfo}
	}
}

// NoticeType 提示類型
type NoticeType string

const (
	NoticeError   NoticeType = "error"
	NoticeWarning NoticeType = "warning"
	NoticeInfo    NoticeType = "info"
)

// Notice 顯示給使用者的提示
type Notice struct {
	Message string     `json:"message"`
	Type    NoticeType `json:"type"`
}
