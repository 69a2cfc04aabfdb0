package models

import (
	"fmt"
	"strings"
)

// CompiledMember identifies a compiled method. The walker only reads it to
// render suggestion text; ownership stays with the metadata layer that
// resolved it.
type CompiledMember struct {
	ClassName  string   `json:"class"` // fully qualified, dot separated
	MemberName string   `json:"member"`
	ParamTypes []string `json:"params,omitempty"`
	ReturnType string   `json:"return,omitempty"`
}

func (m *CompiledMember) FullyQualifiedClassName() string {
	return m.ClassName
}

// UnqualifiedSignature renders the member without its declaring class,
// e.g. "int indexOf(java.lang.String)".
func (m *CompiledMember) UnqualifiedSignature() string {
	var sb strings.Builder
	if m.ReturnType != "" {
		sb.WriteString(m.ReturnType)
		sb.WriteString(" ")
	}
	sb.WriteString(m.MemberName)
	sb.WriteString("(")
	sb.WriteString(strings.Join(m.ParamTypes, ", "))
	sb.WriteString(")")
	return sb.String()
}

func (m *CompiledMember) String() string {
	return fmt.Sprintf("%s.%s", m.ClassName, m.MemberName)
}

// memberKey gives a stable identity for suggestion equality; nil members
// collapse to a single sentinel key.
func memberKey(m *CompiledMember) string {
	if m == nil {
		return ""
	}
	return m.ClassName + "#" + m.UnqualifiedSignature()
}
