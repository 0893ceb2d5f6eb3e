package gen

import "fmt"

// Static pools for synthesized names. Everything here is mock data; any
// resemblance to a real patient or practice is coincidental.

var firstNamesF = []string{
	"Maria", "Linda", "Patricia", "Susan", "Karen", "Nancy", "Angela",
	"Teresa", "Janet", "Gloria", "Emily", "Hannah", "Sofia", "Amara",
	"Priya", "Mei", "Fatima", "Elena", "Rosa", "Grace",
}

var firstNamesM = []string{
	"James", "Robert", "Michael", "David", "William", "Richard", "Carlos",
	"Daniel", "Kevin", "Brian", "Jose", "Omar", "Wei", "Raj", "Andre",
	"Miguel", "Samuel", "Victor", "Ahmed", "Thomas",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson",
	"Anderson", "Nguyen", "Kim", "Patel", "Chen", "Ali", "Okafor",
	"Silva", "Kowalski", "Murphy", "Schmidt", "Ivanov",
}

var practiceNouns = []string{
	"Family Health", "Medical Group", "Primary Care", "Health Partners",
	"Community Clinic", "Wellness Center", "Medical Associates",
}

var practiceRegions = []string{
	"North", "South", "East", "West", "Central", "Lakeside", "Riverside",
	"Highland", "Valley", "Harbor",
}

// PatientName draws a synthetic "First Last" for the given sex.
func (r *Rand) PatientName(sex string) string {
	pool := firstNamesM
	if sex == "F" {
		pool = firstNamesF
	}
	first := pool[r.Intn(len(pool))]
	last := lastNames[r.Intn(len(lastNames))]
	return first + " " + last
}

// PracticeName draws a synthetic provider practice name and its region.
func (r *Rand) PracticeName() (name, region string) {
	region = practiceRegions[r.Intn(len(practiceRegions))]
	noun := practiceNouns[r.Intn(len(practiceNouns))]
	return fmt.Sprintf("%s %s", region, noun), region
}
