package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/ruletree"
	"golang.org/x/net/html"
)

// Cascade collects the stylesheets of a document, keyed by cascade
// origin, with their selectors compiled. It answers selector-match
// queries per element, in the order the rule tree wants them.
//
// Adding stylesheets is not safe for concurrent use; matching is, once
// all sheets are added.
type Cascade struct {
	uaOrUserLock style.SharedLock
	authorLock   style.SharedLock
	rules        []matchableRule
	order        int
}

// matchableRule is one stylesheet rule with its selector compiled. The
// rule's declarations are split into a normal and an important half,
// each with its own style source, since the two halves live at
// different cascade levels.
type matchableRule struct {
	sel       cascadia.Sel
	level     style.CascadeLevel // origin (normal) level
	normal    style.Source       // null if the rule has no normal declarations
	important style.Source       // null if the rule has no important declarations
	order     int                // source order, lowest priority first
}

// NewCascade creates an empty cascade with fresh stylesheet locks.
func NewCascade() *Cascade {
	return &Cascade{
		uaOrUserLock: style.NewSharedLock(),
		authorLock:   style.NewSharedLock(),
	}
}

// Guards acquires read guards for the cascade's stylesheet locks, as
// needed by the diagnostic rule-tree dump. Callers release them with
// Done.
func (c *Cascade) Guards() style.StylesheetGuards {
	return style.ReadGuards(c.uaOrUserLock, c.authorLock)
}

func (c *Cascade) lockFor(origin style.CascadeLevel) style.SharedLock {
	switch origin {
	case style.UserAgentNormal, style.UserNormal:
		return c.uaOrUserLock
	}
	return c.authorLock
}

// importantTwin maps a stylesheet origin to the level of its
// "!important" declarations.
func importantTwin(origin style.CascadeLevel) style.CascadeLevel {
	switch origin {
	case style.UserAgentNormal:
		return style.UserAgentImportant
	case style.UserNormal:
		return style.UserImportant
	}
	return style.AuthorImportant
}

// AddStylesheet compiles a stylesheet's selectors and registers its
// rules at the given origin, which must be one of UserAgentNormal,
// UserNormal or AuthorNormal. Rules with selectors cascadia cannot
// parse are dropped, as a browser would drop them.
func (c *Cascade) AddStylesheet(sheet StyleSheet, origin style.CascadeLevel) error {
	if origin != style.UserAgentNormal && origin != style.UserNormal && origin != style.AuthorNormal {
		return fmt.Errorf("cascade: %s is not a stylesheet origin", origin)
	}
	if sheet == nil || sheet.Empty() {
		return nil
	}
	lock := c.lockFor(origin)
	for _, rule := range sheet.Rules() {
		var normal, important []style.Declaration
		for _, key := range rule.Properties() {
			d := style.Declaration{Key: key, Value: rule.Value(key), Important: rule.IsImportant(key)}
			if d.Important {
				important = append(important, d)
			} else {
				normal = append(normal, d)
			}
		}
		group, err := cascadia.ParseGroup(rule.Selector())
		if err != nil {
			tracer().Infof("dropping rule with unsupported selector %q: %v", rule.Selector(), err)
			continue
		}
		var normalSrc, importantSrc style.Source
		if len(normal) > 0 {
			normalSrc = style.NewSource(style.NewPropertyBlock(lock, normal...))
		}
		if len(important) > 0 {
			importantSrc = style.NewSource(style.NewPropertyBlock(lock, important...))
		}
		for _, sel := range group {
			c.rules = append(c.rules, matchableRule{
				sel:       sel,
				level:     origin,
				normal:    normalSrc,
				important: importantSrc,
				order:     c.order,
			})
			c.order++
		}
	}
	return nil
}

// ruleHit is one matched declaration half, with its sort keys.
type ruleHit struct {
	src   style.Source
	level style.CascadeLevel
	spec  cascadia.Specificity
	order int
}

type hitKey struct {
	src   style.SourceKey
	level style.CascadeLevel
}

// MatchedRules runs selector matching for one element and returns the
// matched style sources ordered the way the rule tree consumes them:
// by cascade level, then selector specificity, then source order. A
// source matched through several selectors of the same rule appears
// once, at its highest-priority position.
func (c *Cascade) MatchedRules(n *html.Node) []ruletree.MatchedRule {
	var hits []ruleHit
	for _, r := range c.rules {
		if !r.sel.Match(n) {
			continue
		}
		spec := r.sel.Specificity()
		if !r.normal.IsNull() {
			hits = append(hits, ruleHit{src: r.normal, level: r.level, spec: spec, order: r.order})
		}
		if !r.important.IsNull() {
			hits = append(hits, ruleHit{src: r.important, level: importantTwin(r.level), spec: spec, order: r.order})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].level != hits[j].level {
			return hits[i].level < hits[j].level
		}
		if hits[i].spec != hits[j].spec {
			return hits[i].spec.Less(hits[j].spec)
		}
		return hits[i].order < hits[j].order
	})
	last := make(map[hitKey]int, len(hits))
	for i, h := range hits {
		last[hitKey{src: h.src.Key(), level: h.level}] = i
	}
	matched := make([]ruletree.MatchedRule, 0, len(last))
	for i, h := range hits {
		if last[hitKey{src: h.src.Key(), level: h.level}] != i {
			continue
		}
		matched = append(matched, ruletree.MatchedRule{Source: h.src, Level: h.level})
	}
	tracer().Debugf("element <%s> matched %d rule sources", n.Data, len(matched))
	return matched
}
