package profile

import (
	"sort"
	"strconv"
)

// OtherInstitution is the institution choice that requires a typed name.
const OtherInstitution = "Other / Not Listed"

// Degrees offered in the education form.
var Degrees = []string{
	"B.Tech", "B.E.", "B.Sc", "BCA", "B.Com", "BBA", "B.A.",
	"M.Tech", "M.E.", "M.Sc", "MCA", "MBA", "M.Com", "M.A.", "Ph.D",
}

// Specializations offered in the education form.
var Specializations = []string{
	"Computer Science and Engineering (CSE)",
	"Information Technology (IT)",
	"Artificial Intelligence and Data Science",
	"Cyber Security",
	"Electronics and Communication Engineering (ECE)",
	"Electrical and Electronics Engineering (EEE)",
	"Electronics and Instrumentation Engineering (EIE)",
	"Mechanical Engineering",
	"Civil Engineering",
	"Chemical Engineering",
	"Metallurgical Engineering",
	"Aerospace Engineering",
	"Biotechnology",
	"Biomedical Engineering",
	"Robotics and Automation",
	"Internet of Things (IoT)",
	"Cloud Computing",
	"Business Administration",
	"Commerce",
	"Other",
}

// CGPARanges are the selectable CGPA buckets.
var CGPARanges = []string{
	"9.0 – 10.0",
	"8.0 – 8.9",
	"7.0 – 7.9",
	"6.0 – 6.9",
	"5.0 – 5.9",
	"Below 5.0",
}

var institutionsByState = map[string][]string{
	"Karnataka": {
		"Indian Institute of Science (IISc), Bangalore",
		"National Institute of Technology Karnataka (NITK), Surathkal",
		"RV College of Engineering, Bangalore",
		"BMS College of Engineering, Bangalore",
		"PES University, Bangalore",
	},
	"Tamil Nadu": {
		"Indian Institute of Technology (IIT), Madras",
		"National Institute of Technology (NIT), Tiruchirappalli",
		"Anna University, Chennai",
		"Vellore Institute of Technology (VIT), Vellore",
		"PSG College of Technology, Coimbatore",
	},
	"Maharashtra": {
		"Indian Institute of Technology (IIT), Bombay",
		"Veermata Jijabai Technological Institute (VJTI), Mumbai",
		"College of Engineering Pune (COEP)",
		"Visvesvaraya National Institute of Technology (VNIT), Nagpur",
	},
	"Delhi": {
		"Indian Institute of Technology (IIT), Delhi",
		"Delhi Technological University (DTU)",
		"Netaji Subhas University of Technology (NSUT)",
		"Indraprastha Institute of Information Technology (IIIT), Delhi",
	},
	"Telangana": {
		"Indian Institute of Technology (IIT), Hyderabad",
		"International Institute of Information Technology (IIIT), Hyderabad",
		"National Institute of Technology (NIT), Warangal",
		"Osmania University, Hyderabad",
	},
	"Kerala": {
		"National Institute of Technology (NIT), Calicut",
		"College of Engineering, Trivandrum (CET)",
		"Cochin University of Science and Technology (CUSAT)",
	},
	"West Bengal": {
		"Indian Institute of Technology (IIT), Kharagpur",
		"Jadavpur University, Kolkata",
		"National Institute of Technology (NIT), Durgapur",
	},
}

// States returns the state names in alphabetical order.
func States() []string {
	states := make([]string, 0, len(institutionsByState))
	for s := range institutionsByState {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Institutions returns the institutions for a state, always ending with
// OtherInstitution. An unknown state yields only the sentinel.
func Institutions(state string) []string {
	list := institutionsByState[state]
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, OtherInstitution)
}

// GraduationYears returns selectable years, newest first, from four years
// after current back to 2000.
func GraduationYears(current int) []string {
	var years []string
	for y := current + 4; y >= 2000; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}
