// Package leaderboarddomain holds the pure ranking logic: scopes, filters,
// per-member stat computation, and rank assignment. No I/O.
package leaderboarddomain

import (
	"errors"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// ScopeKind selects which candidate set a leaderboard query ranks.
type ScopeKind string

const (
	ScopeGlobal   ScopeKind = "global"
	ScopeRegional ScopeKind = "regional"
	ScopeGroup    ScopeKind = "group"
	ScopeFriends  ScopeKind = "friends"
)

// ErrFriendsUnavailable is returned for the friends scope. The capability is
// not built yet; callers get an explicit error instead of silently-empty
// data.
var ErrFriendsUnavailable = errors.New("friends leaderboards are not available yet")

// Scope is a tagged scope selection. Region is set for ScopeRegional,
// GroupID for ScopeGroup.
type Scope struct {
	Kind    ScopeKind
	Region  string
	GroupID sharedtypes.GroupID
}

// Validate rejects scopes this engine cannot serve.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeGlobal, ScopeRegional, ScopeGroup:
		return nil
	case ScopeFriends:
		return ErrFriendsUnavailable
	default:
		return errors.New("unknown leaderboard scope: " + string(s.Kind))
	}
}
