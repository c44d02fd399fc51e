// Package studyplan holds the local study plan used when the model cannot
// produce a detailed one.
package studyplan

import (
	"fmt"
	"slices"
	"strconv"
)

const (
	MinHours     = 1
	MaxHours     = 12
	DefaultHours = 3
)

// Subjects returns the subjects a plan can cover, in display order.
func Subjects() []string {
	return []string{"Math", "Science", "History", "Language", "Arts"}
}

// IsSubject reports whether s is one of Subjects.
func IsSubject(s string) bool {
	return slices.Contains(Subjects(), s)
}

// Allocation is the daily time given to one subject.
type Allocation struct {
	Subject string
	Hours   float64
}

func (a Allocation) String() string {
	return fmt.Sprintf("%s: %.2f hours per day (basic allocation)", a.Subject, a.Hours)
}

// EvenSplit divides hours equally across subjects. It returns nil when
// there are no subjects.
func EvenSplit(hours float64, subjects []string) []Allocation {
	if len(subjects) == 0 {
		return nil
	}
	share := hours / float64(len(subjects))
	out := make([]Allocation, len(subjects))
	for i, s := range subjects {
		out[i] = Allocation{Subject: s, Hours: share}
	}
	return out
}

// Header returns the two lines shown above every plan.
func Header(name string, hours int) []string {
	return []string{
		fmt.Sprintf("Study plan for %s generated!", name),
		"Study " + strconv.Itoa(hours) + " hours every day:",
	}
}
