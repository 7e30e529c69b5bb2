package handlers

import "tusk/internal/tracker"

func addTask(tr *tracker.Tracker, c Add) (*Result, error) {
	task, err := tr.Add(c.Account, c.Description)
	if err != nil {
		return nil, err
	}
	return &Result{Task: &task}, nil
}

func deleteTask(tr *tracker.Tracker, c Delete) (*Result, error) {
	if err := tr.Delete(c.Account, c.ID); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

// completeTask returns the updated listing so the caller can show it.
func completeTask(tr *tracker.Tracker, c Complete) (*Result, error) {
	if err := tr.Complete(c.Account, c.ID); err != nil {
		return nil, err
	}
	return listTasks(tr, List{Account: c.Account})
}

func uncompleteTask(tr *tracker.Tracker, c Uncomplete) (*Result, error) {
	if err := tr.Uncomplete(c.Account, c.ID); err != nil {
		return nil, err
	}
	return listTasks(tr, List{Account: c.Account})
}
