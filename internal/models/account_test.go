package models

import (
	"strings"
	"testing"
)

func TestAccountValidation(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr string
	}{
		{
			name:    "empty name should fail",
			account: Account{Name: "", NextID: 1},
			wantErr: "name is required",
		},
		{
			name:    "whitespace name should fail",
			account: Account{Name: "  ", NextID: 1},
			wantErr: "name is required",
		},
		{
			name:    "zero next_id should fail",
			account: Account{Name: "work", NextID: 0},
			wantErr: "next_id must be at least 1",
		},
		{
			name: "duplicate ids should fail",
			account: Account{Name: "work", NextID: 3, Tasks: []Task{
				{ID: 1, Description: "a"},
				{ID: 1, Description: "b"},
			}},
			wantErr: "duplicate task id 1",
		},
		{
			name: "id at next_id should fail",
			account: Account{Name: "work", NextID: 2, Tasks: []Task{
				{ID: 2, Description: "a"},
			}},
			wantErr: "is not below next_id",
		},
		{
			name: "invalid task should fail",
			account: Account{Name: "work", NextID: 2, Tasks: []Task{
				{ID: 1, Description: ""},
			}},
			wantErr: "description is required",
		},
		{
			name:    "empty account is valid",
			account: Account{Name: "work", NextID: 7},
		},
		{
			name: "gaps in ids are valid",
			account: Account{Name: "work", NextID: 10, Tasks: []Task{
				{ID: 9, Description: "a"},
				{ID: 2, Description: "b", Completed: true},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestAccount_AddTaskAssignsSequentialIDs(t *testing.T) {
	a := NewAccount("work")

	for want := int64(1); want <= 5; want++ {
		task := a.AddTask("Task")
		if task.ID != want {
			t.Fatalf("expected id %d, got %d", want, task.ID)
		}
		if task.Completed {
			t.Fatal("expected new task to be incomplete")
		}
	}

	if a.NextID != 6 {
		t.Errorf("expected next_id 6, got %d", a.NextID)
	}
}

func TestAccount_RemoveTaskPreservesOrder(t *testing.T) {
	a := NewAccount("work")
	a.AddTask("A")
	a.AddTask("B")
	a.AddTask("C")

	if !a.RemoveTask(2) {
		t.Fatal("expected task 2 to be removed")
	}
	if a.RemoveTask(2) {
		t.Fatal("expected second removal to report false")
	}

	expected := []string{"A", "C"}
	if len(a.Tasks) != len(expected) {
		t.Fatalf("expected %d tasks, got %d", len(expected), len(a.Tasks))
	}
	for i, desc := range expected {
		if a.Tasks[i].Description != desc {
			t.Errorf("position %d: expected %q, got %q", i, desc, a.Tasks[i].Description)
		}
	}
}

func TestAccount_ClearTasksKeepsNextID(t *testing.T) {
	a := NewAccount("work")
	a.AddTask("A")
	a.AddTask("B")

	if n := a.ClearTasks(); n != 2 {
		t.Errorf("expected 2 cleared tasks, got %d", n)
	}
	if len(a.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(a.Tasks))
	}
	if got := a.AddTask("C").ID; got != 3 {
		t.Errorf("expected id 3 after clear, got %d", got)
	}
}

func TestAccount_CloneIsDeep(t *testing.T) {
	a := NewAccount("work")
	a.AddTask("A")

	c := a.Clone()
	c.Tasks[0].Completed = true
	c.Tasks[0].Description = "changed"

	if a.Tasks[0].Completed || a.Tasks[0].Description != "A" {
		t.Error("expected clone mutation not to affect original")
	}
}
