/*
Package cssom drives selector matching for the rule tree.

Overview

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule; concrete implementations may be found in
sub-packages (e.g. douceuradapter). A Cascade collects stylesheets per
cascade origin, compiles their selectors with cascadia, and answers for
a given DOM element the ordered list of matched style sources — ordered
by cascade level, then selector specificity, then source order. That
list is exactly what ruletree.InsertOrderedRules consumes, so elements
matching the same rules end up sharing their rule chain.

There is not very much open source Go code around for supporting us in
implementing a styling engine, except the great work of
https://godoc.org/github.com/andybalholm/cascadia. We will have to
compromise on many features in order to complete this in a realistic
time frame; matching here covers what selector support cascadia offers.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.cssom")
}
