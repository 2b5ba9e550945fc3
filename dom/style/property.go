package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.style'
func tracer() tracing.Trace {
	return tracing.Select("cascade.style")
}

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Declaration is a single property declaration within a rule or an
// inline style attribute, e.g. "margin-top: 15px !important".
type Declaration struct {
	Key       string
	Value     Property
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Key + ": " + d.Value.String() + " !important"
	}
	return d.Key + ": " + d.Value.String()
}

// PropertyBlock is a shared block of property declarations, the payload
// behind a style source. Rule-matching hands out sources pointing to
// blocks; the same block may be referenced from many elements. Blocks
// belong to a SharedLock and may only be read while holding a guard for
// that lock (see Source.Declarations).
type PropertyBlock struct {
	lock  SharedLock
	decls []Declaration
}

// NewPropertyBlock creates a block of declarations, protected by a
// shared lock. Declarations are kept in source order.
func NewPropertyBlock(lock SharedLock, decls ...Declaration) *PropertyBlock {
	return &PropertyBlock{lock: lock, decls: decls}
}

// HasImportant is true if at least one declaration of this block carries
// the "!important" flag.
func (b *PropertyBlock) HasImportant() bool {
	for _, d := range b.decls {
		if d.Important {
			return true
		}
	}
	return false
}

// HasNormal is true if at least one declaration of this block does not
// carry the "!important" flag.
func (b *PropertyBlock) HasNormal() bool {
	for _, d := range b.decls {
		if !d.Important {
			return true
		}
	}
	return false
}

// Len returns the number of declarations in this block.
func (b *PropertyBlock) Len() int {
	return len(b.decls)
}

// Stringer for property blocks; used for debugging. Does not require a
// guard; do not call while a writer may be active.
func (b *PropertyBlock) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, d := range b.decls {
		sb.WriteString(d.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}
