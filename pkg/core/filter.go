package core

// FilterKind enumerates the collection filters.
type FilterKind string

const (
	FilterKindAll      FilterKind = "all"
	FilterKindArchived FilterKind = "archived"
	FilterKindTag      FilterKind = "tag"
)

// Filter narrows the note collection. The zero value matches every note.
type Filter struct {
	Kind FilterKind `json:"kind" yaml:"kind"`
	Tag  string     `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// FilterAll matches every note.
var FilterAll = Filter{Kind: FilterKindAll}

// FilterArchived matches archived notes only.
var FilterArchived = Filter{Kind: FilterKindArchived}

// TagFilter matches notes carrying tag.
func TagFilter(tag string) Filter {
	return Filter{Kind: FilterKindTag, Tag: tag}
}

// Match reports whether n passes the filter.
// Unknown kinds behave like FilterAll.
func (f Filter) Match(n Note) bool {
	switch f.Kind {
	case FilterKindArchived:
		return n.IsArchived
	case FilterKindTag:
		return n.HasTag(f.Tag)
	default:
		return true
	}
}

func (f Filter) String() string {
	if f.Kind == FilterKindTag {
		return "tag:" + f.Tag
	}
	if f.Kind == "" {
		return string(FilterKindAll)
	}
	return string(f.Kind)
}
