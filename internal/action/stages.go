package action

import (
	"fmt"
	"slices"
)

// Default stage names.
const (
	StageSetupMesh        = "setup_mesh"
	StageAddVariable      = "add_variable"
	StageAddKernel        = "add_kernel"
	StageAddObjects       = "add_objects"
	StageAddOutput        = "add_output"
	StageSetupExecutioner = "setup_executioner"
)

// StageList is an ordered enumeration of stage names with one default stage.
type StageList struct {
	names []string
	def   string
}

// NewStageList creates a list. def must be one of names.
func NewStageList(def string, names ...string) (*StageList, error) {
	l := &StageList{}
	for _, n := range names {
		if err := l.Append(n); err != nil {
			return nil, err
		}
	}
	if !l.Has(def) {
		return nil, fmt.Errorf("default stage %q is not in the stage list", def)
	}
	l.def = def
	return l, nil
}

// DefaultStages returns the built-in stage list, with add_objects as the
// default stage.
func DefaultStages() *StageList {
	return &StageList{
		names: []string{
			StageSetupMesh,
			StageAddVariable,
			StageAddKernel,
			StageAddObjects,
			StageAddOutput,
			StageSetupExecutioner,
		},
		def: StageAddObjects,
	}
}

func (l *StageList) check(name string) error {
	if name == "" {
		return fmt.Errorf("stage name cannot be empty")
	}
	if l.Has(name) {
		return fmt.Errorf("stage %q already exists", name)
	}
	return nil
}

// Append adds name at the end.
func (l *StageList) Append(name string) error {
	if err := l.check(name); err != nil {
		return err
	}
	l.names = append(l.names, name)
	return nil
}

// InsertBefore adds name directly before an existing stage.
func (l *StageList) InsertBefore(before, name string) error {
	if err := l.check(name); err != nil {
		return err
	}
	i, ok := l.Index(before)
	if !ok {
		return fmt.Errorf("cannot insert stage %q: stage %q does not exist", name, before)
	}
	l.names = slices.Insert(l.names, i, name)
	return nil
}

// Index returns the position of name.
func (l *StageList) Index(name string) (int, bool) {
	i := slices.Index(l.names, name)
	return i, i >= 0
}

// Has reports whether name is a stage.
func (l *StageList) Has(name string) bool {
	_, ok := l.Index(name)
	return ok
}

// Default returns the stage used by actions that do not name one.
func (l *StageList) Default() string { return l.def }

// Names returns the stages in execution order.
func (l *StageList) Names() []string {
	return slices.Clone(l.names)
}
