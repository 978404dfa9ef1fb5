package handler

// errorResponse mirrors the envelope rendered by the central error handler.
// Declared here so swagger annotations can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

type createTaskRequest struct {
	Name                string   `json:"name"                  validate:"required,max=150"`
	Description         string   `json:"description"           validate:"required"`
	ResponsiblePersonID string   `json:"responsible_person_id" validate:"required"`
	Status              string   `json:"status"                validate:"omitempty,oneof=TODO 'In Progress' Done"`
	Priority            string   `json:"priority"              validate:"omitempty,oneof=Low Medium High"`
	AssigneeIDs         []string `json:"assignees_ids"`
}

// updateTaskRequest is a partial update: pointer fields distinguish "absent"
// from "set to zero value". Absent fields are left untouched.
type updateTaskRequest struct {
	Name                *string  `json:"name"                  validate:"omitempty,max=150"`
	Description         *string  `json:"description"`
	ResponsiblePersonID *string  `json:"responsible_person_id"`
	Status              *string  `json:"status"                validate:"omitempty,oneof=TODO 'In Progress' Done"`
	Priority            *string  `json:"priority"              validate:"omitempty,oneof=Low Medium High"`
	AssigneeIDs         []string `json:"assignees_ids"`
}

type assigneeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type createTaskResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Assignees []assigneeResponse `json:"assignees"`
}

type updateTaskResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	ResponsiblePerson assigneeResponse   `json:"responsible_person"`
	Assignees         []assigneeResponse `json:"assignees"`
}

type deleteTaskResponse struct {
	Name      string             `json:"name"`
	Assignees []assigneeResponse `json:"assignees"`
}
