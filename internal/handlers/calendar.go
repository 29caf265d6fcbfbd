package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

// CalendarEvent is the FullCalendar event shape the frontend consumes.
type CalendarEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// GetCalendar returns the user's "to do" and "in progress" tasks that carry
// a deadline, shaped as calendar events keyed on the deadline.
func GetCalendar(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	events := []CalendarEvent{}

	for _, status := range []string{models.StatusToDo, models.StatusInProgress} {
		s := status
		tasks, err := models.ListTasks(userID, models.TaskFilter{Status: &s})

		if err != nil {
			respondModelError(ctx, err, "Calendar")
			return
		}

		for _, task := range tasks {
			if task.Deadline == nil {
				continue
			}

			deadline, err := models.ParseTimestamp(*task.Deadline)

			if err != nil {
				continue
			}

			events = append(events, CalendarEvent{
				ID:          task.ID,
				Title:       task.Title,
				Start:       deadline.Format(time.RFC3339),
				Description: task.Description,
				Status:      task.Status,
			})
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}
