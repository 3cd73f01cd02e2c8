package service

import "github.com/MKhiriev/go-accounts/models"

// ownerOrAdminPolicy allows admins everything and other callers only their
// own record.
type ownerOrAdminPolicy struct{}

// NewPolicy returns the owner-or-admin [Policy].
func NewPolicy() Policy {
	return ownerOrAdminPolicy{}
}

func (ownerOrAdminPolicy) CanActOn(actor models.Actor, targetID string) bool {
	return actor.IsAdm || (actor.ID != "" && actor.ID == targetID)
}

func (ownerOrAdminPolicy) IsAdmin(actor models.Actor) bool {
	return actor.IsAdm
}
