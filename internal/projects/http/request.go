package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
)

const statusRule = "oneof=DRAFT IN_PROGRESS DONE CANCELED"

type createProjectRequest struct {
	Title       domain.Optional[string] `json:"title"`
	ClientName  domain.Optional[string] `json:"clientName"`
	ClientEmail domain.Optional[string] `json:"clientEmail"`
	Phone       domain.Optional[string] `json:"phone"`
	Address     domain.Optional[string] `json:"address"`
	Description domain.Optional[string] `json:"description"`
	Status      domain.Optional[string] `json:"status"`
	ScheduledAt scheduleField           `json:"scheduledAt"`
}

type updateProjectRequest struct {
	Title       domain.Optional[string] `json:"title"`
	ClientName  domain.Optional[string] `json:"clientName"`
	ClientEmail domain.Optional[string] `json:"clientEmail"`
	Phone       domain.Optional[string] `json:"phone"`
	Address     domain.Optional[string] `json:"address"`
	Description domain.Optional[string] `json:"description"`
	Status      domain.Optional[string] `json:"status"`
	ScheduledAt scheduleField           `json:"scheduledAt"`
}

// fieldRule describes how one string field is validated.
type fieldRule struct {
	name     string
	rules    string
	required bool
	nullable bool
}

var (
	titleRule       = fieldRule{name: "title", rules: "min=3,max=120"}
	clientNameRule  = fieldRule{name: "clientName", rules: "min=2,max=120"}
	clientEmailRule = fieldRule{name: "clientEmail", rules: "email"}
	phoneRule       = fieldRule{name: "phone", rules: "min=3,max=30"}
	addressRule     = fieldRule{name: "address", rules: "min=3,max=200"}
	descriptionRule = fieldRule{name: "description", rules: "max=2000"}
	statusFieldRule = fieldRule{name: "status", rules: statusRule}
)

func (r fieldRule) require() fieldRule { r.required = true; return r }
func (r fieldRule) nullOK() fieldRule { r.nullable = true; return r }

// checker collects field-level validation failures.
type checker struct {
	v       *validator.Validate
	details []apperror.Detail
}

func (c *checker) fail(field, msg string) {
	c.details = append(c.details, apperror.Detail{Field: field, Message: msg})
}

// str trims and validates o under rule, returning the trimmed field.
func (c *checker) str(o domain.Optional[string], rule fieldRule) domain.Optional[string] {
	if !o.IsSet() {
		if rule.required {
			c.fail(rule.name, "Required")
		}
		return o
	}
	if o.IsNull() {
		if !rule.nullable {
			c.fail(rule.name, "Expected string, received null")
		}
		return o
	}

	v, _ := o.Get()
	v = strings.TrimSpace(v)
	if err := c.v.Var(v, rule.rules); err != nil {
		c.fail(rule.name, describe(err))
	}
	return domain.Value(v)
}

func (c *checker) err() error {
	if len(c.details) == 0 {
		return nil
	}
	return apperror.Validation("Invalid request", c.details...)
}

func (r createProjectRequest) toNewProject(v *validator.Validate) (domain.NewProject, error) {
	c := &checker{v: v}
	title := c.str(r.Title, titleRule.require())
	clientName := c.str(r.ClientName, clientNameRule.require())
	email := c.str(r.ClientEmail, clientEmailRule)
	phone := c.str(r.Phone, phoneRule)
	address := c.str(r.Address, addressRule)
	description := c.str(r.Description, descriptionRule)
	status := c.str(r.Status, statusFieldRule)
	if err := c.err(); err != nil {
		return domain.NewProject{}, err
	}

	t, _ := title.Get()
	cn, _ := clientName.Get()
	st, _ := status.Get()
	return domain.NewProject{
		Title:       t,
		ClientName:  cn,
		ClientEmail: email.Ptr(),
		Phone:       phone.Ptr(),
		Address:     address.Ptr(),
		Description: description.Ptr(),
		Status:      domain.Status(st),
		ScheduledAt: r.ScheduledAt.Ptr(),
	}, nil
}

func (r updateProjectRequest) toPatch(v *validator.Validate) (domain.ProjectPatch, error) {
	c := &checker{v: v}
	patch := domain.ProjectPatch{
		Title:       c.str(r.Title, titleRule),
		ClientName:  c.str(r.ClientName, clientNameRule),
		ClientEmail: c.str(r.ClientEmail, clientEmailRule.nullOK()),
		Phone:       c.str(r.Phone, phoneRule.nullOK()),
		Address:     c.str(r.Address, addressRule.nullOK()),
		Description: c.str(r.Description, descriptionRule.nullOK()),
		ScheduledAt: r.ScheduledAt.Optional,
	}
	if st, ok := c.str(r.Status, statusFieldRule).Get(); ok {
		patch.Status = domain.Value(domain.Status(st))
	}
	if err := c.err(); err != nil {
		return domain.ProjectPatch{}, err
	}
	return patch, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid value"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		return "Allowed: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}

// scheduleField decodes scheduledAt: null clears, "" means absent, otherwise
// a date (YYYY-MM-DD, start of day UTC) or an RFC3339 / datetime-local value.
type scheduleField struct {
	domain.Optional[time.Time]
}

var scheduleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func (s *scheduleField) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &fieldDecodeError{Field: "scheduledAt", Message: "Expected date string"}
	}
	if raw == nil {
		s.Optional = domain.Null[time.Time]()
		return nil
	}

	v := strings.TrimSpace(*raw)
	if v == "" {
		s.Optional = domain.Optional[time.Time]{}
		return nil
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.Optional = domain.Value(t.UTC())
			return nil
		}
	}
	return &fieldDecodeError{Field: "scheduledAt", Message: "Invalid date"}
}

type fieldDecodeError struct {
	Field   string
	Message string
}

func (e *fieldDecodeError) Error() string { return e.Field + ": " + e.Message }

// decodeStrict reads a JSON object from r, rejecting unknown keys. An empty
// body decodes as {}.
func decodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var (
		fieldErr *fieldDecodeError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &fieldErr):
		return apperror.Validation("Invalid request", apperror.Detail{Field: fieldErr.Field, Message: fieldErr.Message})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperror.Validation("Invalid request", apperror.Detail{Field: field, Message: "Expected " + typeErr.Type.String()})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperror.Validation("Invalid request", apperror.Detail{Field: name, Message: "Unrecognized key"})
	default:
		return apperror.Validation("Invalid request", apperror.Detail{Field: "body", Message: "Malformed JSON"})
	}
}
