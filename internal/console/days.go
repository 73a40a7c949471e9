package console

import (
	"strconv"
	"strings"
)

// weekday codes: 0 = Sunday ... 6 = Saturday
var dayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// the form lists Monday first and Sunday last
var toggleOrder = [7]int{1, 2, 3, 4, 5, 6, 0}

// DaySet is the pending weekday selection of a schedule form.
type DaySet struct {
	on [7]bool
}

func parseCode(code string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || n < 0 || n > 6 {
		return 0, false
	}
	return n, true
}

// ParseDays reads the transport form ("1,3,5"). Blank and unknown codes are ignored.
func ParseDays(s string) DaySet {
	var d DaySet
	for _, part := range strings.Split(s, ",") {
		if n, ok := parseCode(part); ok {
			d.on[n] = true
		}
	}
	return d
}

// DaysOf builds a set from individual codes, as posted by the form checkboxes.
func DaysOf(codes ...string) DaySet {
	var d DaySet
	for _, code := range codes {
		if n, ok := parseCode(code); ok {
			d.on[n] = true
		}
	}
	return d
}

// Toggle adds or removes one day.
func (d *DaySet) Toggle(code string) {
	if n, ok := parseCode(code); ok {
		d.on[n] = !d.on[n]
	}
}

func (d DaySet) Has(code string) bool {
	n, ok := parseCode(code)
	return ok && d.on[n]
}

func (d DaySet) Len() int {
	n := 0
	for _, on := range d.on {
		if on {
			n++
		}
	}
	return n
}

// Encode produces the transport form, codes ascending.
func (d DaySet) Encode() string {
	codes := make([]string, 0, 7)
	for n, on := range d.on {
		if on {
			codes = append(codes, strconv.Itoa(n))
		}
	}
	return strings.Join(codes, ",")
}

type DayOption struct {
	Code    string
	Label   string
	Checked bool
}

// Options lists the form toggles in display order.
func (d DaySet) Options() []DayOption {
	out := make([]DayOption, 0, len(toggleOrder))
	for _, n := range toggleOrder {
		out = append(out, DayOption{Code: strconv.Itoa(n), Label: dayLabels[n], Checked: d.on[n]})
	}
	return out
}

// DayLabel maps a code to its short name; unknown codes map to "".
func DayLabel(code string) string {
	n, ok := parseCode(code)
	if !ok {
		return ""
	}
	return dayLabels[n]
}

// DaysText renders a stored days string for a card, keeping the stored order.
func DaysText(s string) string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if label := DayLabel(part); label != "" {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, ", ")
}
