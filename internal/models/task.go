package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskboard-dev/taskboard/db"
	"gorm.io/gorm"
)

const (
	StatusToDo       = "to do"
	StatusInProgress = "in progress"
	StatusDone       = "done"
	StatusBlocked    = "blocked"
)

var (
	ValidStatuses   = []string{StatusToDo, StatusInProgress, StatusDone, StatusBlocked}
	ValidPriorities = []string{"low", "medium", "high", "urgent"}
)

// ValidateStatus checks that status is one of the four canonical statuses.
func ValidateStatus(status string) error {
	for _, s := range ValidStatuses {
		if status == s {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// ValidatePriority checks that priority is one of the four canonical
// priorities.
func ValidatePriority(priority string) error {
	for _, p := range ValidPriorities {
		if priority == p {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
}

type Task struct {
	ID                  int64   `gorm:"column:id;primaryKey" json:"id"`
	UserID              int64   `gorm:"column:user_id;primaryKey" json:"user_id"`
	ProjectID           *int64  `gorm:"column:project_id" json:"project_id"`
	Title               string  `gorm:"column:title" json:"title"`
	Description         string  `gorm:"column:description" json:"description"`
	DetailedDescription string  `gorm:"column:detailed_description" json:"detailed_description"`
	CreationDate        string  `gorm:"column:creation_date" json:"creation_date"`
	Deadline            *string `gorm:"column:deadline" json:"deadline"`
	Status              string  `gorm:"column:status" json:"status"`
	Priority            string  `gorm:"column:priority" json:"priority"`
	CompletedDate       *string `gorm:"column:completed_date" json:"completed_date"`
}

func (Task) TableName() string {
	return "tasks"
}

// NewTask carries the fields accepted at task creation. Title, Description
// and UserID are required; Deadline, if set, must already be in the
// canonical timestamp form.
type NewTask struct {
	Title               string
	Description         string
	UserID              int64
	ProjectID           *int64
	DetailedDescription string
	Deadline            string
	Status              string
	Priority            string
}

// CreateTask validates and inserts a new task. The task id is allocated in
// the same transaction as the insert. creation_date is stamped to now in
// canonical form.
func CreateTask(n NewTask) (*Task, error) {
	if n.Title == "" || n.Description == "" || n.UserID == 0 {
		return nil, fmt.Errorf("%w: title, description and user_id are required", ErrMissingRequiredField)
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

	var deadline *string

	if n.Deadline != "" {
		d, err := NormalizeTimestamp(n.Deadline)

		if err != nil {
			return nil, err
		}

		deadline = &d
	}

	task := Task{
		UserID:              n.UserID,
		ProjectID:           n.ProjectID,
		Title:               n.Title,
		Description:         n.Description,
		DetailedDescription: n.DetailedDescription,
		CreationDate:        time.Now().Format(TimestampLayout),
		Deadline:            deadline,
		Status:              status,
		Priority:            priority,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, "tasks", n.UserID)

		if err != nil {
			return err
		}

		task.ID = id

		return tx.Create(&task).Error
	})

	if err != nil {
		return nil, err
	}

	return &task, nil
}

// TaskPatch is a partial update: only non-nil fields are written. ProjectID
// carries the raw form value so an empty string can mean "detach from any
// project".
type TaskPatch struct {
	ProjectID           *string
	Title               *string
	Description         *string
	DetailedDescription *string
	Deadline            *string
	Status              *string
	Priority            *string
}

// UpdateTask applies the supplied fields to the task scoped by (taskID,
// userID). Setting status to "done" stamps completed_date in the same
// update; a later transition away from "done" leaves the stamp in place.
func UpdateTask(taskID, userID int64, patch TaskPatch) error {
	if taskID == 0 || userID == 0 {
		return fmt.Errorf("%w: task_id and user_id are required", ErrMissingRequiredField)
	}

	updates := make(map[string]interface{})

	if patch.Status != nil {
		if err := ValidateStatus(*patch.Status); err != nil {
			return err
		}

		updates["status"] = *patch.Status

		if *patch.Status == StatusDone {
			updates["completed_date"] = time.Now().Format(TimestampLayout)
		}
	}

	if patch.Priority != nil {
		if err := ValidatePriority(*patch.Priority); err != nil {
			return err
		}

		updates["priority"] = *patch.Priority
	}

	if patch.ProjectID != nil {
		if *patch.ProjectID == "" {
			updates["project_id"] = nil
		} else {
			// Digit strings are coerced to INTEGER by the column's affinity;
			// a dangling reference trips the composite foreign key instead.
			updates["project_id"] = *patch.ProjectID
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

	if patch.Deadline != nil {
		if *patch.Deadline == "" {
			updates["deadline"] = nil
		} else {
			d, err := NormalizeTimestamp(*patch.Deadline)

			if err != nil {
				return err
			}

			updates["deadline"] = d
		}
	}

	if len(updates) == 0 {
		return ErrNoFieldsProvided
	}

	result := db.DB.Model(&Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTask removes the task scoped by (taskID, userID). Tasks have no
// dependents, so there is nothing to cascade.
func DeleteTask(taskID, userID int64) error {
	result := db.DB.Where("id = ? AND user_id = ?", taskID, userID).Delete(&Task{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetTask retrieves a single task scoped by (taskID, userID).
func GetTask(taskID, userID int64) (*Task, error) {
	var task Task

	err := db.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &task, nil
}

// TaskFilter narrows ListTasks to an allow-listed set of columns.
type TaskFilter struct {
	ProjectID  *int64
	Status     *string
	Priority   *string
	Unassigned bool
}

// ListTasks retrieves the user's tasks matching the filter. Status and
// priority filters are validated before the query runs.
func ListTasks(userID int64, filter TaskFilter) ([]Task, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", ErrMissingRequiredField)
	}

	query := db.DB.Where("user_id = ?", userID)

	if filter.Status != nil {
		if err := ValidateStatus(*filter.Status); err != nil {
			return nil, err
		}

		query = query.Where("status = ?", *filter.Status)
	}

	if filter.Priority != nil {
		if err := ValidatePriority(*filter.Priority); err != nil {
			return nil, err
		}

		query = query.Where("priority = ?", *filter.Priority)
	}

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	if filter.Unassigned {
		query = query.Where("project_id IS NULL")
	}

	var tasks []Task

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// TasksOnHold retrieves tasks whose status is "to do" or "blocked", ordered
// by ascending deadline (NULL deadlines first, per store default).
func TasksOnHold(userID int64) ([]Task, error) {
	var tasks []Task

	err := db.DB.
		Where("user_id = ? AND status IN ?", userID, []string{StatusToDo, StatusBlocked}).
		Order("deadline ASC").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// CompletedThisWeek retrieves done tasks whose completed_date falls in the
// same year and ISO week as now. Rows with an unparseable completed_date
// are skipped.
func CompletedThisWeek(userID int64, now time.Time) ([]Task, error) {
	var done []Task

	err := db.DB.
		Where("user_id = ? AND status = ? AND completed_date IS NOT NULL", userID, StatusDone).
		Find(&done).Error

	if err != nil {
		return nil, err
	}

	year, week := now.ISOWeek()

	var tasks []Task

	for _, task := range done {
		if task.CompletedDate == nil {
			continue
		}

		completed, err := ParseTimestamp(*task.CompletedDate)

		if err != nil {
			continue
		}

		y, w := completed.ISOWeek()

		if y == year && w == week {
			tasks = append(tasks, task)
		}
	}

	return tasks, nil
}

// UpcomingTasks retrieves tasks that are neither done nor in progress and
// whose deadline date falls within [today, today+days] inclusive, ordered
// by ascending deadline.
func UpcomingTasks(userID int64, now time.Time, days int) ([]Task, error) {
	var candidates []Task

	err := db.DB.
		Where("user_id = ? AND status NOT IN ? AND deadline IS NOT NULL",
			userID, []string{StatusDone, StatusInProgress}).
		Order("deadline ASC").
		Find(&candidates).Error

	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := today.AddDate(0, 0, days)

	var tasks []Task

	for _, task := range candidates {
		due, err := ParseTimestamp(*task.Deadline)

		if err != nil {
			continue
		}

		day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())

		if !day.Before(today) && !day.After(last) {
			tasks = append(tasks, task)
		}
	}

	return tasks, nil
}

// CountTasks returns the number of tasks the user owns.
func CountTasks(userID int64) (int64, error) {
	var count int64

	err := db.DB.Model(&Task{}).Where("user_id = ?", userID).Count(&count).Error

	return count, err
}

// CountTasksByStatus returns the number of the user's tasks with the given
// status.
func CountTasksByStatus(userID int64, status string) (int64, error) {
	if err := ValidateStatus(status); err != nil {
		return 0, err
	}

	var count int64

	err := db.DB.Model(&Task{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error

	return count, err
}
