package api

import "github.com/phrazzld/taskbin/internal/domain"

// TaskRequest is the payload for creating or replacing a task.
type TaskRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Completed   bool   `json:"completada"`
}

// toTask converts the request into a domain task without an ID.
func (r TaskRequest) toTask() domain.Task {
	return domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// DeletionResponse is returned by the endpoints that remove a task.
type DeletionResponse struct {
	Message string             `json:"mensaje"`
	Task    domain.DeletedTask `json:"tarea"`
}

// Messages returned alongside removed tasks.
const (
	MessageTaskDeleted = "Tarea eliminada exitosamente"
	MessageTaskPurged  = "Tarea eliminada permanentemente del sistema"
)
