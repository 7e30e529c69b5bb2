package handlers

import "fmt"

// Command is a single parsed request against one account. The unexported
// marker method keeps the set of commands closed to this package.
type Command interface {
	AccountName() string
	fmt.Stringer
	command()
}

// Add creates a task, creating the account if it does not exist yet.
type Add struct {
	Account     string
	Description string
}

// Delete removes a task by id.
type Delete struct {
	Account string
	ID      int64
}

// Complete marks a task as done.
type Complete struct {
	Account string
	ID      int64
}

// Uncomplete marks a task as not done.
type Uncomplete struct {
	Account string
	ID      int64
}

// List shows every task of an account.
type List struct {
	Account string
}

// Clear removes every task of an account.
type Clear struct {
	Account string
}

func (c Add) AccountName() string        { return c.Account }
func (c Delete) AccountName() string     { return c.Account }
func (c Complete) AccountName() string   { return c.Account }
func (c Uncomplete) AccountName() string { return c.Account }
func (c List) AccountName() string       { return c.Account }
func (c Clear) AccountName() string      { return c.Account }

func (c Add) String() string        { return fmt.Sprintf("add %q", c.Account) }
func (c Delete) String() string     { return fmt.Sprintf("delete %q #%d", c.Account, c.ID) }
func (c Complete) String() string   { return fmt.Sprintf("complete %q #%d", c.Account, c.ID) }
func (c Uncomplete) String() string { return fmt.Sprintf("uncomplete %q #%d", c.Account, c.ID) }
func (c List) String() string       { return fmt.Sprintf("list %q", c.Account) }
func (c Clear) String() string      { return fmt.Sprintf("clear %q", c.Account) }

func (Add) command()        {}
func (Delete) command()     {}
func (Complete) command()   {}
func (Uncomplete) command() {}
func (List) command()       {}
func (Clear) command()      {}
