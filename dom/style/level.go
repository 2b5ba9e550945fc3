package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// CascadeLevel is the cascade-origin precedence tier a matched rule is
// positioned at. Levels are totally ordered; conflicting declarations at
// a higher level win over lower ones. The ordering follows the CSS
// cascade specification, with "!important" declarations of an origin
// mirrored into their own, higher tier.
type CascadeLevel uint8

const (
	// UserAgentNormal holds normal declarations from user-agent stylesheets.
	// This is the lowest level; the rule-tree root is tagged with it.
	UserAgentNormal CascadeLevel = iota
	// UserNormal holds normal declarations from user stylesheets.
	UserNormal
	// PresHints holds presentational hints from HTML attributes.
	PresHints
	// AuthorNormal holds normal declarations from author stylesheets.
	AuthorNormal
	// StyleAttribute holds normal declarations from inline style attributes.
	StyleAttribute
	// Animations holds declarations produced by CSS animations.
	Animations
	// AuthorImportant holds important declarations from author stylesheets.
	AuthorImportant
	// StyleAttributeImportant holds important inline declarations.
	StyleAttributeImportant
	// UserImportant holds important declarations from user stylesheets.
	UserImportant
	// UserAgentImportant holds important user-agent declarations.
	UserAgentImportant
	// Transitions holds declarations produced by CSS transitions.
	// Transitions trump everything else.
	Transitions
)

// LowestLevel is the sentinel level carried by the rule-tree root.
const LowestLevel = UserAgentNormal

// Importance is the projection of a cascade level onto the normal vs.
// "!important" axis.
type Importance uint8

const (
	// ImportanceNormal marks declarations without "!important".
	ImportanceNormal Importance = iota
	// ImportanceImportant marks declarations with "!important".
	ImportanceImportant
)

func (imp Importance) String() string {
	if imp == ImportanceImportant {
		return "!important"
	}
	return "normal"
}

// Importance returns whether declarations at this level are the
// important or the normal half of their origin.
func (l CascadeLevel) Importance() Importance {
	switch l {
	case AuthorImportant, StyleAttributeImportant, UserImportant, UserAgentImportant:
		return ImportanceImportant
	}
	return ImportanceNormal
}

// IsAnimation is true for levels fed by the animation machinery rather
// than by stylesheets.
func (l CascadeLevel) IsAnimation() bool {
	return l == Animations || l == Transitions
}

func (l CascadeLevel) String() string {
	switch l {
	case UserAgentNormal:
		return "user-agent"
	case UserNormal:
		return "user"
	case PresHints:
		return "pres-hints"
	case AuthorNormal:
		return "author"
	case StyleAttribute:
		return "style-attr"
	case Animations:
		return "animations"
	case AuthorImportant:
		return "author!"
	case StyleAttributeImportant:
		return "style-attr!"
	case UserImportant:
		return "user!"
	case UserAgentImportant:
		return "user-agent!"
	case Transitions:
		return "transitions"
	}
	return "<invalid level>"
}
