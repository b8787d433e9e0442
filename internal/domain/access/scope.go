// Package access builds effective storage filters from a caller's principal.
// Scoping happens here, before any query reaches the repository, so that a
// plain user can never observe another owner's records even at the level of
// counts or existence.
package access

import (
	"notekeeper/internal/domain/entities"
)

// NoteFilter is a structural predicate over notes. Title matches exactly
// (mutations), TitlePattern by substring containment (search); an empty
// Owner matches any owner.
type NoteFilter struct {
	Title        string
	TitlePattern string
	Owner        string
}

// EffectiveFilter applies role-based visibility to a requested filter. A
// user-role principal is pinned to its own records; elevated roles see the
// requested filter unchanged.
func EffectiveFilter(p entities.Principal, requested NoteFilter) NoteFilter {
	if p.Role.Elevated() {
		return requested
	}
	requested.Owner = p.Email
	return requested
}

// OwnerOnlyFilter builds the mutation filter for update and delete. Writes
// are restricted to the literal owner regardless of role.
func OwnerOnlyFilter(p entities.Principal, title string) NoteFilter {
	return NoteFilter{
		Title: title,
		Owner: p.Email,
	}
}
