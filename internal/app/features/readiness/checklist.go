// internal/app/features/readiness/checklist.go
package readiness

// ChecklistVersion identifies the current checklist layout. Bump it when
// items are added or removed so stored attestations stay interpretable.
const ChecklistVersion = 1

// Checklist section names.
const (
	SectionProgram  = "Program and people"
	SectionIncident = "Incident preparedness"
)

// ChecklistItem is one yes/no line on the readiness checklist.
type ChecklistItem struct {
	Key     string
	Section string
	Label   string
	Help    string
}

// Checklist is the ordered set of practices an organization attests to,
// grouped into sections by the Section field.
var Checklist = []ChecklistItem{
	{
		Key:     "program_adopted",
		Section: SectionProgram,
		Label:   "We have adopted a written cybersecurity program",
		Help:    "A named owner and a document your leadership has signed off on.",
	},
	{
		Key:     "employee_training",
		Section: SectionProgram,
		Label:   "All employees complete security awareness training",
		Help:    "At hire and at least annually after that.",
	},
	{
		Key:     "ir_plan_documented",
		Section: SectionIncident,
		Label:   "We have a documented incident response plan",
		Help:    "Who to call, in what order, and who can make decisions.",
	},
	{
		Key:     "incident_reporting_procedure",
		Section: SectionIncident,
		Label:   "Employees know how to report a suspected incident",
		Help:    "A phone number or address everyone can find without asking.",
	},
	{
		Key:     "ransomware_response_policy",
		Section: SectionIncident,
		Label:   "We have a ransomware response policy",
		Help:    "Including whether and how a payment decision would be made.",
	},
	{
		Key:     "backup_recovery_plan",
		Section: SectionIncident,
		Label:   "We back up critical data and have tested restoring it",
		Help:    "A backup that has never been restored is a hope, not a plan.",
	},
}

// Score computes the whole-percent readiness for a set of checked keys.
// Keys that are not part of the current checklist are ignored.
func Score(checked map[string]bool) int {
	if len(Checklist) == 0 {
		return 0
	}
	n := 0
	for _, item := range Checklist {
		if checked[item.Key] {
			n++
		}
	}
	return n * 100 / len(Checklist)
}
