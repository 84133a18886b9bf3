package imports

import (
	"errors"
	"sort"
	"strings"

	errmsg "github.com/siyuan-infoblox/pyimports/pkg/errors"
)

const (
	// DefaultMaxLineLength is the preferred line length of generated sources
	DefaultMaxLineLength = 88

	// Wildcard is the symbol requesting every name of a namespace
	Wildcard = "*"

	// RelativeMarker prefixes namespaces relative to the current package
	RelativeMarker = "."

	// Indent is used for each entry of a multi-line import
	Indent = "    "
)

// ErrForbiddenWildcardImport is returned when the wildcard symbol is registered
var ErrForbiddenWildcardImport = errors.New(errmsg.ErrMsgForbiddenWildcardImport)

// namespaceImports maps an imported name to its alias
type namespaceImports map[string]string

// Registry aggregates the imports of a single generated file.
// A Registry is not safe for concurrent use; each file gets its own.
type Registry struct {
	groups        map[Category]map[string]namespaceImports
	maxLineLength int
}

// Option configures a Registry
type Option func(*Registry)

// WithMaxLineLength sets the length above which an import is split over several lines
func WithMaxLineLength(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxLineLength = n
		}
	}
}

// New creates an empty Registry
func New(opts ...Option) *Registry {
	r := &Registry{
		groups:        make(map[Category]map[string]namespaceImports, len(categories)),
		maxLineLength: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify determines the category of a non-stdlib namespace from its spelling
func Classify(namespace string) Category {
	if strings.HasPrefix(namespace, RelativeMarker) {
		return LocalCategory
	}
	return ExternalCategory
}

// MaxLineLength returns the configured line length threshold
func (r *Registry) MaxLineLength() int {
	return r.maxLineLength
}

// AddImport registers name from an external or local namespace
func (r *Registry) AddImport(namespace, name string) error {
	return r.AddImportAs(namespace, name, name)
}

// AddImportAs registers name from an external or local namespace under alias.
// An empty alias means the name is not renamed: it is stored as name and
// renders without an " as " clause. Any other alias is rendered verbatim.
func (r *Registry) AddImportAs(namespace, name, alias string) error {
	return r.add(Classify(namespace), namespace, name, alias)
}

// AddStdlibImport registers name from a standard library namespace
func (r *Registry) AddStdlibImport(namespace, name string) error {
	return r.AddStdlibImportAs(namespace, name, name)
}

// AddStdlibImportAs registers name from a standard library namespace under alias.
// Aliases follow the same contract as AddImportAs.
func (r *Registry) AddStdlibImportAs(namespace, name, alias string) error {
	return r.add(StdlibCategory, namespace, name, alias)
}

func (r *Registry) add(category Category, namespace, name, alias string) error {
	if name == Wildcard {
		return ErrForbiddenWildcardImport
	}
	if alias == "" {
		alias = name
	}

	group, ok := r.groups[category]
	if !ok {
		group = make(map[string]namespaceImports)
		r.groups[category] = group
	}
	names, ok := group[namespace]
	if !ok {
		names = make(namespaceImports)
		group[namespace] = names
	}
	names[name] = alias
	return nil
}

// Merge copies every import of other into r, keeping categories.
// Aliases from other replace existing ones.
func (r *Registry) Merge(other *Registry) error {
	if other == nil {
		return nil
	}
	for _, category := range categories {
		for namespace, names := range other.groups[category] {
			for name, alias := range names {
				if err := r.add(category, namespace, name, alias); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Namespaces returns the namespaces of a category in ascending order
func (r *Registry) Namespaces(category Category) []string {
	group := r.groups[category]
	namespaces := make([]string, 0, len(group))
	for namespace := range group {
		namespaces = append(namespaces, namespace)
	}
	sort.Strings(namespaces)
	return namespaces
}

// Entries returns the entries of a namespace in ascending order of name
func (r *Registry) Entries(category Category, namespace string) []Entry {
	names := r.groups[category][namespace]
	entries := make([]Entry, 0, len(names))
	for name, alias := range names {
		entries = append(entries, Entry{Name: name, Alias: alias})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Len returns the number of registered names across all categories
func (r *Registry) Len() int {
	n := 0
	for _, group := range r.groups {
		for _, names := range group {
			n += len(names)
		}
	}
	return n
}

// IsEmpty reports whether no import has been registered
func (r *Registry) IsEmpty() bool {
	for _, group := range r.groups {
		if len(group) > 0 {
			return false
		}
	}
	return true
}

// Render formats the registered imports as grouped declaration blocks.
// Groups are emitted in stdlib, external, local order, each followed by a blank line.
func (r *Registry) Render() string {
	if r.IsEmpty() {
		return ""
	}

	var builder strings.Builder
	for _, category := range categories {
		if len(r.groups[category]) == 0 {
			continue
		}
		r.renderGroup(&builder, category)
	}
	builder.WriteString("\n")
	return builder.String()
}

// String implements fmt.Stringer
func (r *Registry) String() string {
	return r.Render()
}

func (r *Registry) renderGroup(builder *strings.Builder, category Category) {
	for _, namespace := range r.Namespaces(category) {
		entries := r.Entries(category, namespace)
		statement := formatSingleLine(namespace, entries)
		// the terminating line break counts toward the limit
		if len(statement)+1 > r.maxLineLength {
			statement = formatMultiLine(namespace, entries)
		}
		builder.WriteString(statement)
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
}

// formatSingleLine renders "from ns import a, b as c" without a line break
func formatSingleLine(namespace string, entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, formatEntry(entry))
	}
	return "from " + namespace + " import " + strings.Join(parts, ", ")
}

// formatMultiLine renders the parenthesized form without the final line break
func formatMultiLine(namespace string, entries []Entry) string {
	var builder strings.Builder
	builder.WriteString("from " + namespace + " import (\n")
	for _, entry := range entries {
		builder.WriteString(Indent + formatEntry(entry) + ",\n")
	}
	builder.WriteString(")")
	return builder.String()
}

func formatEntry(entry Entry) string {
	if entry.Aliased() {
		return entry.Name + " as " + entry.Alias
	}
	return entry.Name
}
