package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// The core is total: no public operation returns an error, and every
// failure mode is a programmer error (non-monotonic cascade level,
// refcount underflow, double free-list insertion). We check the
// invariants with assertThat and panic on violation. The checks are
// single comparisons on data we touch anyway, so they stay enabled.
const assertionsEnabled = true

func assertThat(cond bool, msg string) {
	if assertionsEnabled && !cond {
		panic("ruletree: " + msg)
	}
}
