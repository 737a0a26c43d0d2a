package domain

import "time"

// ProjectPatch is a partial update. Unset fields are left alone; null clears
// a nullable field. Identity, owner and creation time are not patchable.
type ProjectPatch struct {
	Title       Optional[string]
	ClientName  Optional[string]
	ClientEmail Optional[string]
	Phone       Optional[string]
	Address     Optional[string]
	Description Optional[string]
	Status      Optional[Status]
	ScheduledAt Optional[time.Time]

	// Soft-delete markers, set by the service only.
	IsDeleted Optional[bool]
	DeletedAt Optional[time.Time]
}

// IsEmpty reports whether no field is set.
func (p ProjectPatch) IsEmpty() bool {
	return !p.Title.IsSet() &&
		!p.ClientName.IsSet() &&
		!p.ClientEmail.IsSet() &&
		!p.Phone.IsSet() &&
		!p.Address.IsSet() &&
		!p.Description.IsSet() &&
		!p.Status.IsSet() &&
		!p.ScheduledAt.IsSet() &&
		!p.IsDeleted.IsSet() &&
		!p.DeletedAt.IsSet()
}

// ApplyTo copies the set fields of p onto pr. Null on a non-nullable field is ignored.
func (p ProjectPatch) ApplyTo(pr *Project) {
	if v, ok := p.Title.Get(); ok {
		pr.Title = v
	}
	if v, ok := p.ClientName.Get(); ok {
		pr.ClientName = v
	}
	if v, ok := p.Status.Get(); ok {
		pr.Status = v
	}
	if v, ok := p.IsDeleted.Get(); ok {
		pr.IsDeleted = v
	}
	applyNullable(&pr.ClientEmail, p.ClientEmail)
	applyNullable(&pr.Phone, p.Phone)
	applyNullable(&pr.Address, p.Address)
	applyNullable(&pr.Description, p.Description)
	applyNullable(&pr.ScheduledAt, p.ScheduledAt)
	applyNullable(&pr.DeletedAt, p.DeletedAt)
}

func applyNullable[T any](dst **T, o Optional[T]) {
	if o.IsSet() {
		*dst = o.Ptr()
	}
}
