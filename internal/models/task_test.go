package models

import (
	"errors"
	"testing"
	"time"

	"github.com/taskboard-dev/taskboard/db"
)

func TestValidateStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		if err := ValidateStatus(status); err != nil {
			t.Errorf("ValidateStatus(%q) = %v, want nil", status, err)
		}
	}

	for _, status := range []string{"archived", "Done", "", "todo"} {
		if err := ValidateStatus(status); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ValidateStatus(%q) = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestValidatePriority(t *testing.T) {
	for _, priority := range ValidPriorities {
		if err := ValidatePriority(priority); err != nil {
			t.Errorf("ValidatePriority(%q) = %v, want nil", priority, err)
		}
	}

	if err := ValidatePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("ValidatePriority(%q) = %v, want ErrInvalidPriority", "critical", err)
	}
}

func TestCreateTaskSequentialIDs(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	for want := int64(1); want <= 3; want++ {
		task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}

		if task.ID != want {
			t.Errorf("task id = %d, want %d", task.ID, want)
		}
	}

	// Ids are scoped per user, so bob starts at 1 again.
	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: bob})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if task.ID != 1 {
		t.Errorf("bob's first task id = %d, want 1", task.ID)
	}

	// A gap from a deleted task is not refilled: allocation is max+1.
	if err := DeleteTask(2, alice); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	task, err = CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if task.ID != 4 {
		t.Errorf("task id after deleting id 2 = %d, want 4", task.ID)
	}
}

func TestCreateTaskRequiredFields(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	cases := []NewTask{
		{Title: "", Description: "desc", UserID: alice},
		{Title: "task", Description: "", UserID: alice},
		{Title: "task", Description: "desc", UserID: 0},
	}

	for _, c := range cases {
		if _, err := CreateTask(c); !errors.Is(err, ErrMissingRequiredField) {
			t.Errorf("CreateTask(%+v) = %v, want ErrMissingRequiredField", c, err)
		}
	}

	count, err := CountTasks(alice)

	if err != nil {
		t.Fatalf("CountTasks: %v", err)
	}

	if count != 0 {
		t.Errorf("tasks inserted by failed creates = %d, want 0", count)
	}
}

func TestCreateTaskInvalidDeadline(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	_, err := CreateTask(NewTask{
		Title:       "task",
		Description: "desc",
		UserID:      alice,
		Deadline:    "tomorrow at noon",
	})

	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("CreateTask with bad deadline = %v, want ErrInvalidDateFormat", err)
	}

	count, _ := CountTasks(alice)

	if count != 0 {
		t.Errorf("row inserted despite invalid deadline, count = %d", count)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if task.Status != StatusToDo {
		t.Errorf("status = %q, want %q", task.Status, StatusToDo)
	}

	if task.Priority != "medium" {
		t.Errorf("priority = %q, want %q", task.Priority, "medium")
	}

	if _, err := ParseTimestamp(task.CreationDate); err != nil {
		t.Errorf("creation_date %q is not in canonical form: %v", task.CreationDate, err)
	}

	if task.CompletedDate != nil {
		t.Errorf("completed_date = %v, want nil", *task.CompletedDate)
	}
}

func TestUpdateTaskDoneStampsCompletedDate(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	done := StatusDone

	if err := UpdateTask(task.ID, alice, TaskPatch{Status: &done}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	updated, err := GetTask(task.ID, alice)

	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}

	if updated.CompletedDate == nil {
		t.Fatal("completed_date not stamped on transition to done")
	}

	stamped := *updated.CompletedDate

	if _, err := ParseTimestamp(stamped); err != nil {
		t.Errorf("completed_date %q is not in canonical form: %v", stamped, err)
	}

	// Moving the task back out of "done" keeps the stamp. Intentional:
	// the week's completion statistics count tasks that were finished at
	// some point, not tasks currently marked done.
	toDo := StatusToDo

	if err := UpdateTask(task.ID, alice, TaskPatch{Status: &toDo}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	reverted, err := GetTask(task.ID, alice)

	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}

	if reverted.CompletedDate == nil || *reverted.CompletedDate != stamped {
		t.Errorf("completed_date changed on revert: got %v, want %q", reverted.CompletedDate, stamped)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	title := "renamed"

	if err := UpdateTask(task.ID, alice, TaskPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	updated, err := GetTask(task.ID, alice)

	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}

	if updated.Title != "renamed" {
		t.Errorf("title = %q, want %q", updated.Title, "renamed")
	}

	if updated.Description != "desc" {
		t.Errorf("description changed by unrelated patch: %q", updated.Description)
	}

	if updated.Status != StatusToDo {
		t.Errorf("status changed by unrelated patch: %q", updated.Status)
	}
}

func TestUpdateTaskProjectAssignment(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	project, err := CreateProject(NewProject{Title: "Launch", UserID: alice})

	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	assign := "1"

	if err := UpdateTask(task.ID, alice, TaskPatch{ProjectID: &assign}); err != nil {
		t.Fatalf("UpdateTask assign: %v", err)
	}

	updated, _ := GetTask(task.ID, alice)

	if updated.ProjectID == nil || *updated.ProjectID != project.ID {
		t.Fatalf("project_id = %v, want %d", updated.ProjectID, project.ID)
	}

	// An empty string in the patch means "no project".
	detach := ""

	if err := UpdateTask(task.ID, alice, TaskPatch{ProjectID: &detach}); err != nil {
		t.Fatalf("UpdateTask detach: %v", err)
	}

	updated, _ = GetTask(task.ID, alice)

	if updated.ProjectID != nil {
		t.Errorf("project_id = %v, want nil after detach", *updated.ProjectID)
	}
}

func TestUpdateTaskNoFields(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := UpdateTask(task.ID, alice, TaskPatch{}); !errors.Is(err, ErrNoFieldsProvided) {
		t.Errorf("UpdateTask with empty patch = %v, want ErrNoFieldsProvided", err)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	title := "renamed"

	if err := UpdateTask(99, alice, TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTask(99) = %v, want ErrNotFound", err)
	}

	// Another user's id+user scope never reaches alice's task.
	if err := UpdateTask(task.ID, bob, TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTask as bob = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	task, err := CreateTask(NewTask{Title: "task", Description: "desc", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := DeleteTask(task.ID, alice); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if _, err := GetTask(task.ID, alice); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask after delete = %v, want ErrNotFound", err)
	}

	if err := DeleteTask(task.ID, alice); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteTask = %v, want ErrNotFound", err)
	}
}

func TestTasksOnHold(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	now := time.Now()
	later := now.AddDate(0, 0, 5).Format(TimestampLayout)
	sooner := now.AddDate(0, 0, 1).Format(TimestampLayout)

	mustCreate := func(n NewTask) {
		t.Helper()
		if _, err := CreateTask(n); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	mustCreate(NewTask{Title: "later", Description: "d", UserID: alice, Deadline: later})
	mustCreate(NewTask{Title: "sooner", Description: "d", UserID: alice, Status: StatusBlocked, Deadline: sooner})
	mustCreate(NewTask{Title: "active", Description: "d", UserID: alice, Status: StatusInProgress})
	mustCreate(NewTask{Title: "finished", Description: "d", UserID: alice, Status: StatusDone})

	tasks, err := TasksOnHold(alice)

	if err != nil {
		t.Fatalf("TasksOnHold: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("on hold count = %d, want 2", len(tasks))
	}

	if tasks[0].Title != "sooner" || tasks[1].Title != "later" {
		t.Errorf("on hold order = [%q, %q], want [sooner, later]", tasks[0].Title, tasks[1].Title)
	}
}

func TestUpcomingTasksWindow(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	deadline := func(days int) string {
		return now.AddDate(0, 0, days).Format(TimestampLayout)
	}

	mustCreate := func(n NewTask) {
		t.Helper()
		if _, err := CreateTask(n); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	mustCreate(NewTask{Title: "today", Description: "d", UserID: alice, Deadline: deadline(0)})
	mustCreate(NewTask{Title: "edge", Description: "d", UserID: alice, Deadline: deadline(7)})
	mustCreate(NewTask{Title: "beyond", Description: "d", UserID: alice, Deadline: deadline(8)})
	mustCreate(NewTask{Title: "past", Description: "d", UserID: alice, Deadline: deadline(-1)})
	mustCreate(NewTask{Title: "no deadline", Description: "d", UserID: alice})
	mustCreate(NewTask{Title: "started", Description: "d", UserID: alice, Status: StatusInProgress, Deadline: deadline(2)})
	mustCreate(NewTask{Title: "finished", Description: "d", UserID: alice, Status: StatusDone, Deadline: deadline(2)})

	tasks, err := UpcomingTasks(alice, now, 7)

	if err != nil {
		t.Fatalf("UpcomingTasks: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("upcoming count = %d, want 2", len(tasks))
	}

	// Both window edges are inclusive and the list is deadline-ascending.
	if tasks[0].Title != "today" || tasks[1].Title != "edge" {
		t.Errorf("upcoming = [%q, %q], want [today, edge]", tasks[0].Title, tasks[1].Title)
	}
}

func TestCompletedThisWeek(t *testing.T) {
	openTestDB(t)

	alice := createTestUser(t, "alice")

	fresh, err := CreateTask(NewTask{Title: "fresh", Description: "d", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	stale, err := CreateTask(NewTask{Title: "stale", Description: "d", UserID: alice})

	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	done := StatusDone

	if err := UpdateTask(fresh.ID, alice, TaskPatch{Status: &done}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if err := UpdateTask(stale.ID, alice, TaskPatch{Status: &done}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	// Backdate the second completion to a different week.
	err = db.DB.Model(&Task{}).
		Where("id = ? AND user_id = ?", stale.ID, alice).
		Update("completed_date", "2020-01-01 10:00:00 AM").Error

	if err != nil {
		t.Fatalf("backdating completed_date: %v", err)
	}

	tasks, err := CompletedThisWeek(alice, time.Now())

	if err != nil {
		t.Fatalf("CompletedThisWeek: %v", err)
	}

	if len(tasks) != 1 || tasks[0].Title != "fresh" {
		t.Fatalf("completed this week = %+v, want only %q", tasks, "fresh")
	}
}
