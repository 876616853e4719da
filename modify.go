package fdw

import "fmt"

// BeginModify always fails: the remote endpoint is read-only.
func (a *Adapter) BeginModify() error {
	defer a.guard.enter("BeginModify")()
	return fmt.Errorf("%w: modify on foreign table is not supported", ErrUnsupported)
}

// Insert, Update, Delete and EndModify complete the host protocol. They are never
// reached after a failed BeginModify and do nothing.

func (a *Adapter) Insert(row *Row) error {
	defer a.guard.enter("Insert")()
	return nil
}

func (a *Adapter) Update(rowID Cell, row *Row) error {
	defer a.guard.enter("Update")()
	return nil
}

func (a *Adapter) Delete(rowID Cell) error {
	defer a.guard.enter("Delete")()
	return nil
}

func (a *Adapter) EndModify() error {
	defer a.guard.enter("EndModify")()
	return nil
}
