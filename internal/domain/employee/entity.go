package employee

import (
	"time"
)

// Employee is a row of the portal's directory. The engine never creates or
// mutates employees; the directory is an external collaborator consumed for
// report filters and existence checks.
type Employee struct {
	ID         string
	FullName   string
	Department string
	HireDate   time.Time
	Active     bool
}
