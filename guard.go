package auth

// Decision is the outcome of an ownership check
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// HasOwner is implemented by every record that belongs to a user
type HasOwner interface {
	OwnerID() int64
}

// AuthorizeMutation allows a write only when the caller owns the record.
// An unresolved caller never owns anything.
func AuthorizeMutation(callerID, ownerID int64) Decision {
	if callerID > 0 && callerID == ownerID {
		return Allow
	}
	return Deny
}

// Authorize is the single ownership check shared by every owned record.
// Reads never go through it.
func Authorize[T HasOwner](callerID int64, resource T) error {
	if AuthorizeMutation(callerID, resource.OwnerID()) == Allow {
		return nil
	}
	return ErrForbidden
}
