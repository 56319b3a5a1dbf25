package recipe

import "fmt"

// OptionError 解析器設定無效
type OptionError struct {
	Option  string
	Message string
	Cause   error
}

func (e *OptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid parser option %s: %s: %v", e.Option, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid parser option %s: %s", e.Option, e.Message)
}

func (e *OptionError) Unwrap() error {
	return e.Cause
}
