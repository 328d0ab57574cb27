package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskbin/internal/api/shared"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
	"github.com/phrazzld/taskbin/internal/service"
)

// TaskHandler handles the /tareas and /eliminadas endpoints.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Route("/tareas", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.ReplaceTask)
		r.Patch("/{id}", h.PatchTask)
		r.Delete("/{id}", h.DeleteTask)
	})
	r.Route("/eliminadas", func(r chi.Router) {
		r.Get("/", h.ListDeletedTasks)
		r.Get("/{id}", h.GetDeletedTask)
		r.Post("/{id}", h.RestoreTask)
		r.Delete("/{id}", h.PurgeTask)
	})
}

// ListTasks handles GET /tareas
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "No se pudieron obtener las tareas")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tareas/{id}
// Responds 410 Gone when the task sits in the deleted collection.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo obtener la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tareas
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.toTask())
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo crear la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ReplaceTask handles PUT /tareas/{id}
func (h *TaskHandler) ReplaceTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}
	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.taskService.ReplaceTask(r.Context(), id, req.toTask())
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo actualizar la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// PatchTask handles PATCH /tareas/{id}
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}
	var patch domain.TaskPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	task, err := h.taskService.PatchTask(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo actualizar la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tareas/{id}
// The task moves to the deleted collection.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	deleted, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo eliminar la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletionResponse{Message: MessageTaskDeleted, Task: *deleted})
}

// ListDeletedTasks handles GET /eliminadas
func (h *TaskHandler) ListDeletedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListDeletedTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "No se pudieron obtener las tareas eliminadas")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetDeletedTask handles GET /eliminadas/{id}
func (h *TaskHandler) GetDeletedTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.GetDeletedTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo obtener la tarea eliminada")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// RestoreTask handles POST /eliminadas/{id}
// The response is the restored task without its deletion timestamp.
func (h *TaskHandler) RestoreTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.RestoreTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo restaurar la tarea")
		return
	}
	log.Debug("task restored", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// PurgeTask handles DELETE /eliminadas/{id}
func (h *TaskHandler) PurgeTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	purged, err := h.taskService.PurgeTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "No se pudo eliminar la tarea")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletionResponse{Message: MessageTaskPurged, Task: *purged})
}
