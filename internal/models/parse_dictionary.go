package models

import "strings"

// ParseDictionary is the per-task side table resolving the opaque IDs used
// inside a parse tree to method and class metadata tags. Lookups signal a
// miss by returning nil; a truncated log or a forward reference must never
// abort an analysis.
type ParseDictionary struct {
	types   map[string]*Tag
	klasses map[string]*Tag
	methods map[string]*Tag
}

func NewParseDictionary() *ParseDictionary {
	return &ParseDictionary{
		types:   make(map[string]*Tag),
		klasses: make(map[string]*Tag),
		methods: make(map[string]*Tag),
	}
}

func (d *ParseDictionary) PutType(id string, tag *Tag)   { d.types[id] = tag }
func (d *ParseDictionary) PutKlass(id string, tag *Tag)  { d.klasses[id] = tag }
func (d *ParseDictionary) PutMethod(id string, tag *Tag) { d.methods[id] = tag }

func (d *ParseDictionary) Type(id string) *Tag   { return d.types[id] }
func (d *ParseDictionary) Klass(id string) *Tag  { return d.klasses[id] }
func (d *ParseDictionary) Method(id string) *Tag { return d.methods[id] }

// LookupMember resolves a method ID to a CompiledMember by joining the
// method tag against the klass and type tables. Any missing link yields
// nil rather than an error.
func (d *ParseDictionary) LookupMember(methodID string) *CompiledMember {
	if methodID == "" {
		return nil
	}

	methodTag := d.methods[methodID]
	if methodTag == nil {
		return nil
	}

	holderTag := d.klasses[methodTag.Attr(AttrHolder)]
	if holderTag == nil {
		return nil
	}

	member := &CompiledMember{
		ClassName:  binaryNameToDotted(holderTag.Attr(AttrName)),
		MemberName: methodTag.Attr(AttrName),
		ReturnType: d.typeName(methodTag.Attr(AttrReturn)),
	}

	// The arguments attribute is a space separated list of type IDs and is
	// absent for zero-arg methods.
	if args := methodTag.Attr(AttrArguments); args != "" {
		for _, argID := range strings.Fields(args) {
			member.ParamTypes = append(member.ParamTypes, d.typeName(argID))
		}
	}

	return member
}

// typeName resolves a type or klass ID to a dotted name, falling back to
// the raw ID so a partial dictionary still renders something useful.
func (d *ParseDictionary) typeName(id string) string {
	if id == "" {
		return ""
	}
	if tag := d.types[id]; tag != nil {
		return binaryNameToDotted(tag.Attr(AttrName))
	}
	if tag := d.klasses[id]; tag != nil {
		return binaryNameToDotted(tag.Attr(AttrName))
	}
	return id
}

func binaryNameToDotted(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
