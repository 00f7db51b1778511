package task

import (
	"time"

	"github.com/oapi-codegen/nullable"
)

// CreateInput carries the client-supplied fields of a new task. The id and
// creation time are always assigned server-side.
type CreateInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
}

// Patch is a partial update. Each field is either unspecified (left
// untouched), explicitly null (cleared) or set to a value.
type Patch struct {
	Title       nullable.Nullable[string]   `json:"title,omitempty"`
	Description nullable.Nullable[string]   `json:"description,omitempty"`
	Status      nullable.Nullable[Status]   `json:"status,omitempty"`
	Priority    nullable.Nullable[Priority] `json:"priority,omitempty"`
	DueDate     nullable.Nullable[string]   `json:"dueDate,omitempty"`
}

// Fields returns the JSON names of the fields p specifies, in declaration order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Title.IsSpecified() {
		fields = append(fields, "title")
	}
	if p.Description.IsSpecified() {
		fields = append(fields, "description")
	}
	if p.Status.IsSpecified() {
		fields = append(fields, "status")
	}
	if p.Priority.IsSpecified() {
		fields = append(fields, "priority")
	}
	if p.DueDate.IsSpecified() {
		fields = append(fields, "dueDate")
	}
	return fields
}

// New builds a fully populated task from input, applying the default status
// and priority. It has no side effects.
func New(input CreateInput, id string, now time.Time) (Task, error) {
	if input.Title == "" {
		return Task{}, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return Task{}, ErrInvalidStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, ErrInvalidPriority
	}

	t := Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
	}
	return t.Clone(), nil
}

// Merge applies p over t and returns the result. Fields p leaves unspecified
// keep their value. ID and CreatedAt are always those of t.
func Merge(t Task, p Patch) (Task, error) {
	merged := t.Clone()

	if p.Title.IsSpecified() {
		// null clears the title; blank titles are not re-validated on update
		merged.Title = ""
		if !p.Title.IsNull() {
			merged.Title = p.Title.MustGet()
		}
	}

	if p.Description.IsSpecified() {
		merged.Description = optionalString(p.Description)
	}

	if p.Status.IsSpecified() {
		if p.Status.IsNull() || !p.Status.MustGet().Valid() {
			return Task{}, ErrInvalidStatus
		}
		merged.Status = p.Status.MustGet()
	}

	if p.Priority.IsSpecified() {
		if p.Priority.IsNull() || !p.Priority.MustGet().Valid() {
			return Task{}, ErrInvalidPriority
		}
		merged.Priority = p.Priority.MustGet()
	}

	if p.DueDate.IsSpecified() {
		merged.DueDate = optionalString(p.DueDate)
	}

	merged.ID = t.ID
	merged.CreatedAt = t.CreatedAt
	return merged, nil
}

func optionalString(n nullable.Nullable[string]) *string {
	if n.IsNull() {
		return nil
	}
	v := n.MustGet()
	return &v
}
