package codegen

// asyncIndent prefixes every statement when the body is wrapped in an async routine
const asyncIndent = "  "

// Options controls how statements are generated and laid out
type Options struct {
	WrapAsync               bool   `json:"wrapAsync" yaml:"wrap_async"`
	Headless                bool   `json:"headless" yaml:"headless"`
	WaitForNavigation       bool   `json:"waitForNavigation" yaml:"wait_for_navigation"`
	WaitForSelectorOnClick  bool   `json:"waitForSelectorOnClick" yaml:"wait_for_selector_on_click"`
	BlankLinesBetweenBlocks bool   `json:"blankLinesBetweenBlocks" yaml:"blank_lines_between_blocks"`
	DataAttribute           string `json:"dataAttribute" yaml:"data_attribute"`
}

// DefaultOptions returns the options a recorder starts with
func DefaultOptions() Options {
	return Options{
		WrapAsync:              true,
		Headless:               true,
		WaitForNavigation:      true,
		WaitForSelectorOnClick: true,
	}
}

// Indent is the prefix placed before each rendered statement
func (o Options) Indent() string {
	if o.WrapAsync {
		return asyncIndent
	}
	return ""
}
