package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Source identifies a matched style rule or an inline declaration
// block. Sources compare by identity of the underlying block, not by
// content: two rules with textually identical declarations are still
// distinct sources. Copying a Source is cheap and does not duplicate
// the block.
type Source struct {
	block *PropertyBlock
}

// NullSource is the zero Source. Only the rule-tree root carries it.
var NullSource = Source{}

// NewSource wraps a declaration block into a source identity.
func NewSource(block *PropertyBlock) Source {
	return Source{block: block}
}

// SourceKey is the stable identity key of a source, usable as a map key.
type SourceKey = *PropertyBlock

// Key returns the identity key for map lookup and equality.
func (s Source) Key() SourceKey {
	return s.block
}

// IsNull is true for the zero Source.
func (s Source) IsNull() bool {
	return s.block == nil
}

// Declarations returns the declarations of the source's block. The
// caller proves with the guard argument that the block's shared lock is
// held; passing a guard for a different lock is a programmer error.
func (s Source) Declarations(g Guard) []Declaration {
	if s.block == nil {
		return nil
	}
	if !g.covers(s.block.lock) {
		tracer().Errorf("style source read with a guard for a different lock")
		panic("style: source read with mismatched stylesheet guard")
	}
	return s.block.decls
}

// Block exposes the underlying declaration block for identity purposes.
// Reading declarations through it still requires a guard.
func (s Source) Block() *PropertyBlock {
	return s.block
}

func (s Source) String() string {
	if s.block == nil {
		return "<null source>"
	}
	return s.block.String()
}
