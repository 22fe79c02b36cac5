package application

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// StringsDomain is the key suffix of files holding flat translation strings.
const StringsDomain = "strings"

const vendorSegment = "vendor"

// toSlash normalizes both separator styles to '/'.
func toSlash(rel string) string {
	return strings.ReplaceAll(rel, `\`, "/")
}

// MessageKey derives the dotted key of the file at rel, a path relative to
// the lang directory.
func MessageKey(rel string, stringsDomain bool) string {
	rel = toSlash(rel)
	key := strings.TrimSuffix(rel, path.Ext(rel))
	key = strings.ReplaceAll(key, "/", ".")
	if stringsDomain {
		key += "." + StringsDomain
	}
	if key == vendorSegment || strings.HasPrefix(key, vendorSegment+".") {
		key = vendorKey(key)
	}
	return key
}

// vendorKey turns vendor.<package>.<locale>.<rest> into <locale>.<package>::<rest>.
func vendorKey(key string) string {
	parts := strings.SplitN(key, ".", 4)
	if len(parts) < 3 {
		return key
	}
	rest := ""
	if len(parts) == 4 {
		rest = parts[3]
	}
	return parts[2] + "." + parts[1] + "::" + rest
}

// IncludePath normalizes rel for matching against an inclusion filter:
// the locale directory and the extension are dropped.
func IncludePath(rel string) string {
	p := toSlash(rel)
	if i := strings.Index(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	p = strings.TrimLeft(p, "/")
	return strings.TrimSuffix(p, path.Ext(p))
}

// Filter is an allow-list of normalized paths. An empty Filter keeps
// everything.
type Filter struct {
	exact    map[string]struct{}
	patterns []glob.Glob
}

// NewFilter builds a Filter from entries. Entries containing glob
// metacharacters are compiled as patterns with '/' as separator.
func NewFilter(entries []string) (*Filter, error) {
	f := &Filter{exact: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if !strings.ContainsAny(e, "*?[{") {
			f.exact[e] = struct{}{}
			continue
		}
		g, err := glob.Compile(e, '/')
		if err != nil {
			return nil, err
		}
		f.patterns = append(f.patterns, g)
	}
	return f, nil
}

// Empty reports whether the filter keeps every file.
func (f *Filter) Empty() bool {
	return f == nil || (len(f.exact) == 0 && len(f.patterns) == 0)
}

// Includes reports whether the file at rel passes the filter.
func (f *Filter) Includes(rel string) bool {
	if f.Empty() {
		return true
	}
	p := IncludePath(rel)
	if _, ok := f.exact[p]; ok {
		return true
	}
	for _, g := range f.patterns {
		if g.Match(p) {
			return true
		}
	}
	return false
}
