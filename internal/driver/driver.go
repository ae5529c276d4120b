package driver

import (
	"time"
)

// Driver is an employee licensed to drive trucks. Payroll records belong to drivers.
type Driver struct {
	ID        int64
	FirstName string
	LastName  string
	License   string
	Phone     *string
	Email     *string
	HireDate  time.Time // Set by the store on insert, never changed afterwards
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}
