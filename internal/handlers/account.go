package handlers

import "tusk/internal/tracker"

func listTasks(tr *tracker.Tracker, c List) (*Result, error) {
	tasks, err := tr.List(c.Account)
	if err != nil {
		return nil, err
	}
	return &Result{Tasks: tasks}, nil
}

func clearAccount(tr *tracker.Tracker, c Clear) (*Result, error) {
	if err := tr.Clear(c.Account); err != nil {
		return nil, err
	}
	return &Result{}, nil
}
