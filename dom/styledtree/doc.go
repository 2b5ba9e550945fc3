/*
Package styledtree is a straightforward default implementation of a styled
document tree.

Overview

A styled tree mirrors the element structure of an HTML parse tree and
associates every element with the terminal node of its rule chain in
the shared rule tree. Elements matching identical rule chains hold
handles to the identical rule node; comparing two elements' styles is a
pointer comparison. cssom.(*Cascade).Style builds styled trees of this
node type.

For interactive use it may be appropriate to create a styled tree
derived from another node type; the engine's design should fully
support this kind of switch.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.dom")
}
