package services

import (
	"math"
	"time"

	"github.com/taskboard-dev/taskboard/internal/models"
)

// Dashboard is the display model for the landing page: active projects with
// their qualifying-task counts, recently started projects, the on-hold and
// in-progress task lists, the weekly completion percentage, and tasks due
// within the upcoming window.
type Dashboard struct {
	ActiveProjects    []models.ActiveProject `json:"active_projects"`
	RecentProjects    []models.Project       `json:"recent_projects"`
	TasksOnHold       []models.Task          `json:"tasks_on_hold"`
	InProgressTasks   []models.Task          `json:"in_progress_tasks"`
	CompletedThisWeek float64                `json:"completed_this_week"`
	UpcomingTasks     []models.Task          `json:"upcoming_tasks"`
}

// CompletionRatio returns the share of this week's completions against the
// tasks that were open at some point this week, as a percentage rounded to
// one decimal place. A zero denominator yields 0 rather than an error.
func CompletionRatio(allTasks, doneTasks, completedThisWeek int64) float64 {
	denominator := allTasks - doneTasks + completedThisWeek

	if denominator == 0 {
		return 0
	}

	return math.Round(float64(completedThisWeek)/float64(denominator)*1000) / 10
}

// BuildDashboard composes the filtered model queries into the dashboard
// display model for one user.
func BuildDashboard(userID int64, now time.Time, upcomingDays int) (*Dashboard, error) {
	activeProjects, err := models.ActiveProjects(userID)

	if err != nil {
		return nil, err
	}

	recentProjects, err := models.RecentProjects(userID, now)

	if err != nil {
		return nil, err
	}

	tasksOnHold, err := models.TasksOnHold(userID)

	if err != nil {
		return nil, err
	}

	completedThisWeek, err := models.CompletedThisWeek(userID, now)

	if err != nil {
		return nil, err
	}

	allTasks, err := models.CountTasks(userID)

	if err != nil {
		return nil, err
	}

	doneTasks, err := models.CountTasksByStatus(userID, models.StatusDone)

	if err != nil {
		return nil, err
	}

	upcomingTasks, err := models.UpcomingTasks(userID, now, upcomingDays)

	if err != nil {
		return nil, err
	}

	inProgress := models.StatusInProgress
	inProgressTasks, err := models.ListTasks(userID, models.TaskFilter{Status: &inProgress})

	if err != nil {
		return nil, err
	}

	return &Dashboard{
		ActiveProjects:    activeProjects,
		RecentProjects:    recentProjects,
		TasksOnHold:       tasksOnHold,
		InProgressTasks:   inProgressTasks,
		CompletedThisWeek: CompletionRatio(allTasks, doneTasks, int64(len(completedThisWeek))),
		UpcomingTasks:     upcomingTasks,
	}, nil
}
