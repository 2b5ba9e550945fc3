package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "sync"

// SharedLock is a lock shared by all property blocks of one stylesheet
// origin. Stylesheet contents may be swapped out while a document is
// live (CSSOM mutation); readers of declaration blocks therefore hold a
// read guard for the origin's lock. The rule-tree core itself never
// needs guards, since it treats sources as opaque identities; only
// diagnostic dumping of declaration contents does.
type SharedLock struct {
	mu *sync.RWMutex
}

// NewSharedLock creates a fresh shared lock.
func NewSharedLock() SharedLock {
	return SharedLock{mu: new(sync.RWMutex)}
}

// IsValid is false for the zero value.
func (l SharedLock) IsValid() bool {
	return l.mu != nil
}

// Read acquires the lock for reading and returns a guard token.
// Callers must call Done on the guard when finished.
func (l SharedLock) Read() Guard {
	l.mu.RLock()
	return Guard{mu: l.mu}
}

// Write acquires the lock exclusively, for stylesheet mutation.
func (l SharedLock) Write() Guard {
	l.mu.Lock()
	return Guard{mu: l.mu, exclusive: true}
}

// Guard is a token proving that its shared lock is held. Guards are
// passed down into functions that read locked data.
type Guard struct {
	mu        *sync.RWMutex
	exclusive bool
}

// Done releases the guard.
func (g Guard) Done() {
	if g.mu == nil {
		return
	}
	if g.exclusive {
		g.mu.Unlock()
	} else {
		g.mu.RUnlock()
	}
}

// covers tells if this guard belongs to the given lock.
func (g Guard) covers(l SharedLock) bool {
	return g.mu != nil && g.mu == l.mu
}

// StylesheetGuards bundles read guards for the two stylesheet lock
// domains: user-agent/user sheets share one lock, author-side sheets
// (including inline style attributes) the other. The diagnostic tree
// dump takes one of these; core rule-tree operations do not.
type StylesheetGuards struct {
	UAOrUser Guard
	Author   Guard
}

// ReadGuards acquires read guards for both lock domains.
func ReadGuards(uaOrUser, author SharedLock) StylesheetGuards {
	return StylesheetGuards{UAOrUser: uaOrUser.Read(), Author: author.Read()}
}

// Done releases both guards.
func (g StylesheetGuards) Done() {
	g.Author.Done()
	g.UAOrUser.Done()
}

// ForLevel selects the guard matching a cascade level's origin.
func (g StylesheetGuards) ForLevel(l CascadeLevel) Guard {
	switch l {
	case UserAgentNormal, UserAgentImportant, UserNormal, UserImportant:
		return g.UAOrUser
	}
	return g.Author
}
