package service

import "sportmap/internal/store"

// Policy centralizes the ownership/admin decisions consulted by the
// venue, image and report services, so the rules live in one place.
type Policy struct{}

// CanMutateVenue allows any authenticated user to edit any venue.
// Ownership is deliberately not required for edits; if owner-only
// editing is ever wanted, this is the single place to add it.
func (Policy) CanMutateVenue(caller *store.User, ownerID *int64) bool {
	return caller != nil
}

// CanDeleteVenue allows the owner or an admin.
func (Policy) CanDeleteVenue(caller *store.User, ownerID *int64) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin {
		return true
	}
	return ownerID != nil && *ownerID == caller.ID
}

// CanViewReports allows the venue owner or an admin.
func (Policy) CanViewReports(caller *store.User, ownerID *int64) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin {
		return true
	}
	return ownerID != nil && *ownerID == caller.ID
}

// CanDeleteImage allows only the uploader. Admins currently have no
// override here, unlike venues and reports; known gap kept explicit
// until the intended behavior is confirmed.
func (Policy) CanDeleteImage(caller *store.User, uploadedBy *int64) bool {
	if caller == nil {
		return false
	}
	return uploadedBy != nil && *uploadedBy == caller.ID
}
