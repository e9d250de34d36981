package auth

import "fleetreserve/internal/db"

// CanAdminister reports whether the caller may perform fleet-administrator
// operations.
func CanAdminister(caller *db.AppUser) bool {
	return caller != nil && caller.IsAdmin()
}

// Owns reports whether the caller owns a resource belonging to ownerID.
func Owns(caller *db.AppUser, ownerID int) bool {
	return caller != nil && caller.ID == ownerID
}

// CanAccess is the shared owner-or-administrator guard.
func CanAccess(caller *db.AppUser, ownerID int) bool {
	return CanAdminister(caller) || Owns(caller, ownerID)
}
