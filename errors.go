package sanitize

import "fmt"

// ForbiddenRootNode is returned by SanitizeInPlace when the root element
// itself would be removed or unwrapped by the element decision
// (SPEC_FULL.md §4.4 "Root validation", §7). It is the only error any
// public entry point surfaces to the caller; every other variant swallows
// errors per §7.
type ForbiddenRootNode struct {
	TagName string
}

func (e *ForbiddenRootNode) Error() string {
	return fmt.Sprintf("sanitize: forbidden root node <%s>", e.TagName)
}
