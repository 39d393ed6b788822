package knowledge

// Typed schema for the four knowledge records. Each record is parsed once at
// startup and read-only afterwards; absent fields keep their zero value and
// the prompt assembler substitutes its fallback literals.

type Contacts struct {
	Phone           string `json:"phone"`
	AdmissionsPhone string `json:"admissions_phone"`
	Email           string `json:"email"`
	AdmissionsEmail string `json:"admissions_email"`
	Website         string `json:"website"`
	Address         string `json:"address"`
	OfficeHours     string `json:"office_hours"`
}

type Faculty struct {
	Name     string   `json:"name"`
	Programs []string `json:"programs"`
}

type Faculties struct {
	Faculties []Faculty `json:"faculties"`
	Note      string    `json:"note"`
}

type Milestone struct {
	Year  int    `json:"year"`
	Event string `json:"event"`
}

type History struct {
	Founded    int         `json:"founded"`
	FoundedBy  string      `json:"founded_by"`
	Motto      string      `json:"motto"`
	Summary    string      `json:"summary"`
	Milestones []Milestone `json:"milestones"`
}

type TuitionRange struct {
	Program    string `json:"program"`
	MinPerYear int    `json:"min_per_year"`
	MaxPerYear int    `json:"max_per_year"`
}

type Tuitions struct {
	Currency string         `json:"currency"`
	Ranges   []TuitionRange `json:"ranges"`
	Note     string         `json:"note"`
}
