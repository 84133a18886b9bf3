package imports

// Entry is a single imported name within a namespace
type Entry struct {
	Name  string // imported symbol
	Alias string // local name, equal to Name when not renamed
}

// Aliased reports whether the entry renders with an " as " clause
func (e Entry) Aliased() bool {
	return e.Alias != e.Name
}

// Category represents the group an import is rendered in
type Category int

const (
	StdlibCategory Category = iota
	ExternalCategory
	LocalCategory
)

// categories lists every category in render order
var categories = []Category{StdlibCategory, ExternalCategory, LocalCategory}

func (c Category) String() string {
	switch c {
	case StdlibCategory:
		return "stdlib"
	case ExternalCategory:
		return "external"
	case LocalCategory:
		return "local"
	default:
		return "unknown"
	}
}
