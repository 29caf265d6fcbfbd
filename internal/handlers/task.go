package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

type CreateTaskRequest struct {
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"`
	Deadline            string `json:"deadline"` // datetime-local form value
	ProjectID           *int64 `json:"project_id"`
	Priority            string `json:"priority"`
}

type UpdateTaskRequest struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	DetailedDescription *string `json:"detailed_description"`
	Deadline            *string `json:"deadline"`   // datetime-local form value
	ProjectID           *string `json:"project_id"` // "" detaches the task
	Status              *string `json:"status"`
	Priority            *string `json:"priority"`
}

func CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deadline, err := models.NormalizeInputTimestamp(req.Deadline)

	if err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	// New tasks always start in "to do".
	task, err := models.CreateTask(models.NewTask{
		Title:               req.Title,
		Description:         req.Description,
		UserID:              userID,
		ProjectID:           req.ProjectID,
		DetailedDescription: req.DetailedDescription,
		Deadline:            deadline,
		Status:              models.StatusToDo,
		Priority:            req.Priority,
	})

	if err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	BroadcastRefresh(userID)

	ctx.JSON(http.StatusCreated, task)
}

// ListTasks returns the user's tasks. With no filters the response groups
// tasks by the four statuses; with a status, project_id or unassigned
// filter it returns a flat list.
func ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var filter models.TaskFilter
	filtered := false

	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
		filtered = true
	}

	if projectIDStr := ctx.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseInt(projectIDStr, 10, 64)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Project ID"})
			return
		}

		filter.ProjectID = &projectID
		filtered = true
	}

	if ctx.Query("unassigned") == "true" {
		filter.Unassigned = true
		filtered = true
	}

	if filtered {
		tasks, err := models.ListTasks(userID, filter)

		if err != nil {
			respondModelError(ctx, err, "Task")
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
		return
	}

	groups := map[string]string{
		models.StatusToDo:       "to_do_tasks",
		models.StatusInProgress: "in_progress_tasks",
		models.StatusDone:       "done_tasks",
		models.StatusBlocked:    "blocked_tasks",
	}

	response := make(map[string][]models.Task, len(groups))

	for status, key := range groups {
		s := status
		tasks, err := models.ListTasks(userID, models.TaskFilter{Status: &s})

		if err != nil {
			respondModelError(ctx, err, "Task")
			return
		}

		response[key] = tasks
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask returns the task and, when linked, its project.
func GetTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := models.GetTask(taskID, userID)

	if err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	var project *models.Project

	if task.ProjectID != nil {
		project, err = models.GetProject(*task.ProjectID, userID)

		if err != nil {
			// A detached or vanished project is not an error for the task view.
			project = nil
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"task":    task,
		"project": project,
	})
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := models.TaskPatch{
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		ProjectID:           req.ProjectID,
		Status:              req.Status,
		Priority:            req.Priority,
	}

	if req.Deadline != nil {
		deadline := *req.Deadline

		if deadline != "" {
			deadline, err = models.NormalizeInputTimestamp(deadline)

			if err != nil {
				respondModelError(ctx, err, "Task")
				return
			}
		}

		patch.Deadline = &deadline
	}

	if err := models.UpdateTask(taskID, userID, patch); err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	task, err := models.GetTask(taskID, userID)

	if err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	BroadcastRefresh(userID)

	ctx.JSON(http.StatusOK, task)
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := models.DeleteTask(taskID, userID); err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	BroadcastRefresh(userID)

	ctx.Status(http.StatusNoContent)
}

// UpdateTaskStatus is the board's quick status toggle. It accepts a
// narrower status set than the full editor: a task cannot be blocked from
// here.
func UpdateTaskStatus(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := ctx.Param("status")

	switch status {
	case models.StatusToDo, models.StatusInProgress, models.StatusDone:
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := models.UpdateTask(taskID, userID, models.TaskPatch{Status: &status}); err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	task, err := models.GetTask(taskID, userID)

	if err != nil {
		respondModelError(ctx, err, "Task")
		return
	}

	BroadcastRefresh(userID)

	ctx.JSON(http.StatusOK, task)
}
