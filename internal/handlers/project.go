package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

type CreateProjectRequest struct {
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"`
	StartDate           string `json:"start_date"`
	Deadline            string `json:"deadline"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
}

type UpdateProjectRequest struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	DetailedDescription *string `json:"detailed_description"`
	StartDate           *string `json:"start_date"`
	Deadline            *string `json:"deadline"`
	Status              *string `json:"status"`
	Priority            *string `json:"priority"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, err := models.CreateProject(models.NewProject{
		Title:               req.Title,
		Description:         req.Description,
		UserID:              userID,
		DetailedDescription: req.DetailedDescription,
		StartDate:           req.StartDate,
		Deadline:            req.Deadline,
		Status:              req.Status,
		Priority:            req.Priority,
	})

	if err != nil {
		respondModelError(ctx, err, "Project")
		return
	}

	BroadcastRefresh(userID)

	ctx.JSON(http.StatusCreated, project)
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := models.ListProjects(userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject returns the project along with its linked tasks grouped by the
// four statuses.
func GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := models.GetProject(projectID, userID)

	if err != nil {
		respondModelError(ctx, err, "Project")
		return
	}

	linkedTasks := make(map[string][]models.Task, len(models.ValidStatuses))
	groups := map[string]string{
		models.StatusToDo:       "to_do_tasks",
		models.StatusInProgress: "in_progress_tasks",
		models.StatusDone:       "done_tasks",
		models.StatusBlocked:    "blocked_tasks",
	}

	for status, key := range groups {
		s := status
		tasks, err := models.ListTasks(userID, models.TaskFilter{ProjectID: &projectID, Status: &s})

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}

		linkedTasks[key] = tasks
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project":      project,
		"linked_tasks": linkedTasks,
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := models.ProjectPatch{
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		StartDate:           req.StartDate,
		Deadline:            req.Deadline,
		Status:              req.Status,
		Priority:            req.Priority,
	}

	if err := models.UpdateProject(projectID, userID, patch); err != nil {
		respondModelError(ctx, err, "Project")
		return
	}

	project, err := models.GetProject(projectID, userID)

	if err != nil {
		respondModelError(ctx, err, "Project")
		return
	}

	BroadcastRefresh(userID)

	ctx.JSON(http.StatusOK, project)
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := models.DeleteProject(projectID, userID); err != nil {
		respondModelError(ctx, err, "Project")
		return
	}

	BroadcastRefresh(userID)

	ctx.Status(http.StatusNoContent)
}
