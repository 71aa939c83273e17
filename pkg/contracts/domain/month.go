package domain

// Month is a parsed calendar month: its 1-12 ordinal plus the canonical
// three-letter display label ("Apr"). The label is a deterministic function
// of the ordinal, so series grouped on (ordinal, label) cannot collide.
type Month struct {
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label"`
}

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthFromOrdinal builds the canonical Month for an ordinal in [1,12].
// The second return is false for anything out of range.
func MonthFromOrdinal(ordinal int) (Month, bool) {
	if ordinal < 1 || ordinal > 12 {
		return Month{}, false
	}
	return Month{Ordinal: ordinal, Label: monthLabels[ordinal-1]}, true
}

func (m Month) String() string {
	return m.Label
}
