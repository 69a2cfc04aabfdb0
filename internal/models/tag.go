package models

// Tag and attribute names emitted by HotSpot's -XX:+LogCompilation output.
const (
	TagTask       = "task"
	TagTaskQueued = "task_queued"
	TagPhase      = "phase"
	TagParse      = "parse"
	TagBC         = "bc"
	TagBranch     = "branch"
	TagCall       = "call"
	TagMethod     = "method"
	TagKlass      = "klass"
	TagType       = "type"
	TagInlineFail = "inline_fail"

	AttrID          = "id"
	AttrMethod      = "method"
	AttrBCI         = "bci"
	AttrBranchCount = "cnt"
	AttrBranchProb  = "prob"
	AttrBytes       = "bytes"
	AttrIICount     = "iicount"
	AttrReason      = "reason"
	AttrName        = "name"
	AttrHolder      = "holder"
	AttrArguments   = "arguments"
	AttrReturn      = "return"
	AttrCompileID   = "compile_id"
)

// Tag is one node of a compilation task's parse tree: a name, a set of
// attributes, and an ordered list of children. Trees are built once by the
// log reader and are read-only for the duration of any walk.
type Tag struct {
	name     string
	attrs    map[string]string
	children []*Tag
}

func NewTag(name string, attrs map[string]string) *Tag {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Tag{
		name:  name,
		attrs: attrs,
	}
}

func (t *Tag) Name() string {
	return t.name
}

// Attr returns the named attribute value, or "" when absent.
func (t *Tag) Attr(key string) string {
	return t.attrs[key]
}

// HasAttr distinguishes an absent attribute from an empty one.
func (t *Tag) HasAttr(key string) bool {
	_, ok := t.attrs[key]
	return ok
}

func (t *Tag) Attrs() map[string]string {
	return t.attrs
}

func (t *Tag) Children() []*Tag {
	return t.children
}

// AddChild appends a child in document order. Only the log reader calls
// this while constructing the tree.
func (t *Tag) AddChild(child *Tag) {
	t.children = append(t.children, child)
}

// FirstChildNamed returns the first direct child with the given tag name,
// or nil when there is none.
func (t *Tag) FirstChildNamed(name string) *Tag {
	for _, child := range t.children {
		if child.name == name {
			return child
		}
	}
	return nil
}
