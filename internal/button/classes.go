package button

// State class names. They are part of the styling contract and must not change.
const (
	ClassDisabled = "button-disabled"
	ClassEnabled  = "button-enabled"
	ClassFocus    = "button-focus"
	ClassBlur     = "button-blur"
	ClassOver     = "button-over"
	ClassOut      = "button-out"
	ClassUp       = "button-up"
	ClassDown     = "button-down"
)

// StateClasses lists every class a button may put on its element.
var StateClasses = []string{
	ClassDisabled,
	ClassEnabled,
	ClassFocus,
	ClassBlur,
	ClassOver,
	ClassOut,
	ClassUp,
	ClassDown,
}

// Attributes the button manages and restores on Destroy.
const (
	AttrAriaDisabled = "aria-disabled"
	AttrDisabled     = "disabled"
	AttrRole         = "role"
	AttrTabIndex     = "tabindex"
)

var managedAttrs = []string{AttrAriaDisabled, AttrDisabled, AttrRole, AttrTabIndex}
