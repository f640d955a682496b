package leases

import "errors"

var (
	ErrUnitNotFound       = errors.New("Unit not found")
	ErrTenantNotFound     = errors.New("Tenant not found")
	ErrLeaseNotFound      = errors.New("Lease not found")
	ErrUnitHasActiveLease = errors.New("Unit already has an active lease")
	ErrInvalidStartDate   = errors.New("Invalid start date")
	ErrInvalidEndDate     = errors.New("Invalid end date")
	ErrInvalidRentAmount  = errors.New("Rent amount must be a positive integer")
)
