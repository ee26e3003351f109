package render

// booleanAttrs are attributes that are written without a value when true and
// omitted when false.
var booleanAttrs = map[string]bool{
	"async":      true,
	"autofocus":  true,
	"checked":    true,
	"defer":      true,
	"disabled":   true,
	"hidden":     true,
	"inert":      true,
	"multiple":   true,
	"novalidate": true,
	"open":       true,
	"readonly":   true,
	"required":   true,
	"selected":   true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
