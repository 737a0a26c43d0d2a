// Package scope decides which projects a caller may see or mutate.
package scope

import (
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/auth"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
)

// For returns the visibility predicate for caller. Every read and write path
// goes through it. Admins see every active project; technicians see only the
// active projects they created.
func For(caller auth.Caller) domain.Filter {
	f := domain.Filter{ActiveOnly: true}
	if !caller.IsAdmin() {
		f.OwnerID = caller.ID
	}
	return f
}
