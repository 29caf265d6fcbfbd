package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskboard-dev/taskboard/db"
	"gorm.io/gorm"
)

type Project struct {
	ID                  int64   `gorm:"column:id;primaryKey" json:"id"`
	UserID              int64   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Title               string  `gorm:"column:title" json:"title"`
	Description         string  `gorm:"column:description" json:"description"`
	DetailedDescription string  `gorm:"column:detailed_description" json:"detailed_description"`
	StartDate           string  `gorm:"column:start_date" json:"start_date"`
	Deadline            *string `gorm:"column:deadline" json:"deadline"`
	Status              string  `gorm:"column:status" json:"status"`
	Priority            string  `gorm:"column:priority" json:"priority"`
}

func (Project) TableName() string {
	return "projects"
}

// NewProject carries the fields accepted at project creation. Title and
// UserID are required; dates must be in the canonical date-only form.
// StartDate defaults to the creation date when omitted.
type NewProject struct {
	Title               string
	Description         string
	UserID              int64
	DetailedDescription string
	StartDate           string
	Deadline            string
	Status              string
	Priority            string
}

// CreateProject validates and inserts a new project, allocating its id in
// the same transaction as the insert.
func CreateProject(n NewProject) (*Project, error) {
	if n.Title == "" || n.UserID == 0 {
		return nil, fmt.Errorf("%w: title and user_id are required", ErrMissingRequiredField)
	}

	status := n.Status
	if status == "" {
		status = StatusToDo
	}

	if err := ValidateStatus(status); err != nil {
		return nil, err
	}

	priority := n.Priority
	if priority == "" {
		priority = "medium"
	}

	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	startDate, err := NormalizeDate(n.StartDate)

	if err != nil {
		return nil, err
	}

	if startDate == "" {
		startDate = time.Now().Format(DateLayout)
	}

	var deadline *string

	if n.Deadline != "" {
		d, err := NormalizeDate(n.Deadline)

		if err != nil {
			return nil, err
		}

		deadline = &d
	}

	project := Project{
		UserID:              n.UserID,
		Title:               n.Title,
		Description:         n.Description,
		DetailedDescription: n.DetailedDescription,
		StartDate:           startDate,
		Deadline:            deadline,
		Status:              status,
		Priority:            priority,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, "projects", n.UserID)

		if err != nil {
			return err
		}

		project.ID = id

		return tx.Create(&project).Error
	})

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// ProjectPatch is a partial update: only non-nil fields are written.
type ProjectPatch struct {
	Title               *string
	Description         *string
	DetailedDescription *string
	StartDate           *string
	Deadline            *string
	Status              *string
	Priority            *string
}

// UpdateProject applies the supplied fields to the project scoped by
// (projectID, userID).
func UpdateProject(projectID, userID int64, patch ProjectPatch) error {
	if projectID == 0 || userID == 0 {
		return fmt.Errorf("%w: project_id and user_id are required", ErrMissingRequiredField)
	}

	updates := make(map[string]interface{})

	if patch.Status != nil {
		if err := ValidateStatus(*patch.Status); err != nil {
			return err
		}

		updates["status"] = *patch.Status
	}

	if patch.Priority != nil {
		if err := ValidatePriority(*patch.Priority); err != nil {
			return err
		}

		updates["priority"] = *patch.Priority
	}

	if patch.StartDate != nil {
		d, err := NormalizeDate(*patch.StartDate)

		if err != nil {
			return err
		}

		updates["start_date"] = d
	}

	if patch.Deadline != nil {
		if *patch.Deadline == "" {
			updates["deadline"] = nil
		} else {
			d, err := NormalizeDate(*patch.Deadline)

			if err != nil {
				return err
			}

			updates["deadline"] = d
		}
	}

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if patch.DetailedDescription != nil {
		updates["detailed_description"] = *patch.DetailedDescription
	}

	if len(updates) == 0 {
		return ErrNoFieldsProvided
	}

	result := db.DB.Model(&Project{}).
		Where("id = ? AND user_id = ?", projectID, userID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteProject detaches every task linked to the project, then removes the
// project row. Both steps run in one transaction; the detach comes first so
// no task is ever left referencing a deleted project. Linked tasks survive,
// unassigned.
func DeleteProject(projectID, userID int64) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Task{}).
			Where("project_id = ? AND user_id = ?", projectID, userID).
			Update("project_id", nil).Error

		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", projectID, userID).Delete(&Project{})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

// GetProject retrieves a single project scoped by (projectID, userID).
func GetProject(projectID, userID int64) (*Project, error) {
	var project Project

	err := db.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &project, nil
}

// ListProjects retrieves all the user's projects.
func ListProjects(userID int64) ([]Project, error) {
	var projects []Project

	if err := db.DB.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// ActiveProject is a project row joined with the number of its tasks that
// are "in progress" or "blocked".
type ActiveProject struct {
	Project     `gorm:"embedded"`
	ActiveTasks int64 `gorm:"column:active_tasks" json:"active_tasks"`
}

// ActiveProjects retrieves projects with status "in progress" that have at
// least one task in progress or blocked. Inner-join semantics: an
// in-progress project with no qualifying task is excluded.
func ActiveProjects(userID int64) ([]ActiveProject, error) {
	var projects []ActiveProject

	err := db.DB.Raw(`
		SELECT p.*, COUNT(t.id) AS active_tasks
		FROM projects p
		JOIN tasks t ON t.project_id = p.id AND t.user_id = p.user_id
			AND t.status IN ('in progress', 'blocked')
		WHERE p.user_id = ? AND p.status = 'in progress'
		GROUP BY p.id, p.user_id`, userID).Scan(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

// RecentProjects retrieves projects still "to do" whose start_date is within
// the last seven days.
func RecentProjects(userID int64, now time.Time) ([]Project, error) {
	cutoff := now.AddDate(0, 0, -7).Format(DateLayout)

	var projects []Project

	err := db.DB.
		Where("user_id = ? AND status = ? AND start_date >= ?", userID, StatusToDo, cutoff).
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}
