// Package wizard implements the step sequence and the controller that owns
// the wizard state and enforces every legal transition.
package wizard

import "fmt"

// Step enumerates each screen of the greeting wizard.
type Step int

const (
	StepWelcome   Step = iota // 0
	StepTease1                // 1
	StepTease2                // 2
	StepTease3                // 3 (power-up: tap to unlock)
	StepTease4                // 4 (coffee photo)
	StepTease5                // 5 (selfie photo)
	StepGenerator             // 6
	StepFinal                 // 7
)

// sequence is the total order of the wizard. Navigation walks this table,
// never the numeric values of Step.
var sequence = [...]Step{
	StepWelcome,
	StepTease1,
	StepTease2,
	StepTease3,
	StepTease4,
	StepTease5,
	StepGenerator,
	StepFinal,
}

var stepNames = map[Step]string{
	StepWelcome:   "welcome",
	StepTease1:    "tease-1",
	StepTease2:    "tease-2",
	StepTease3:    "tease-3",
	StepTease4:    "tease-4",
	StepTease5:    "tease-5",
	StepGenerator: "generator",
	StepFinal:     "final",
}

// InvalidStepError is returned by IndexOf for a value outside the closed set.
type InvalidStepError struct {
	Step Step
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step: %d", int(e.Step))
}

// OutOfRangeError is returned by StepAt for an index outside [0, Len()).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("step index %d out of range [0, %d)", e.Index, e.Len)
}

// String returns the step's name.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is a member of the sequence.
func (s Step) Valid() bool {
	_, err := IndexOf(s)
	return err == nil
}

// Len returns the number of steps.
func Len() int {
	return len(sequence)
}

// Steps returns a copy of the ordered sequence.
func Steps() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence[:])
	return out
}

// First returns the initial step.
func First() Step {
	return sequence[0]
}

// Last returns the terminal step.
func Last() Step {
	return sequence[len(sequence)-1]
}

// IndexOf returns the position of step in the sequence.
func IndexOf(step Step) (int, error) {
	for i, s := range sequence {
		if s == step {
			return i, nil
		}
	}
	return -1, &InvalidStepError{Step: step}
}

// StepAt returns the step at index.
func StepAt(index int) (Step, error) {
	if index < 0 || index >= len(sequence) {
		return 0, &OutOfRangeError{Index: index, Len: len(sequence)}
	}
	return sequence[index], nil
}

// Next returns the step after s and true, or s and false at the terminal step.
func (s Step) Next() (Step, bool) {
	i, err := IndexOf(s)
	if err != nil {
		return s, false
	}
	next, err := StepAt(i + 1)
	if err != nil {
		return s, false
	}
	return next, true
}

// Prev returns the step before s and true, or s and false at the initial step.
func (s Step) Prev() (Step, bool) {
	i, err := IndexOf(s)
	if err != nil {
		return s, false
	}
	prev, err := StepAt(i - 1)
	if err != nil {
		return s, false
	}
	return prev, true
}
