package services

import "familywallet/internal/core"

// MemberName resolves a transaction's member reference for display. The
// shared sentinel renders as "General"; a dangling reference degrades to
// "Unknown" rather than failing.
func MemberName(members []core.FamilyMember, memberID string) string {
	if memberID == core.MemberShared {
		return "General"
	}
	for _, m := range members {
		if m.ID == memberID {
			return m.Name
		}
	}
	return "Unknown"
}
