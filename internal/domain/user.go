package domain

// DateJoinedLayout is the locale-style format the upstream dataset uses for
// the dateJoined field, e.g. "Jan 15, 2021, 10:30 AM".
const DateJoinedLayout = "Jan 2, 2006, 03:04 PM"

// Status enumerates the lifecycle states a platform user can be in.
type Status string

const (
	StatusActive      Status = "Active"
	StatusInactive    Status = "Inactive"
	StatusPending     Status = "Pending"
	StatusBlacklisted Status = "Blacklisted"
)

// Statuses lists every valid user status.
var Statuses = []Status{StatusActive, StatusInactive, StatusPending, StatusBlacklisted}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending, StatusBlacklisted:
		return true
	}
	return false
}

// PersonalInfo captures the personal details shown on a user's profile.
type PersonalInfo struct {
	FullName        string `json:"fullName"`
	PhoneNumber     string `json:"phoneNumber"`
	EmailAddress    string `json:"emailAddress"`
	BVN             string `json:"bvn"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"maritalStatus"`
	Children        string `json:"children"`
	TypeOfResidence string `json:"typeOfResidence"`
}

// EducationAndEmployment captures schooling and income details.
type EducationAndEmployment struct {
	LevelOfEducation     string `json:"levelOfEducation"`
	EmploymentStatus     string `json:"employmentStatus"`
	SectorOfEmployment   string `json:"sectorOfEmployment"`
	DurationOfEmployment string `json:"durationOfEmployment"`
	OfficeEmail          string `json:"officeEmail"`
	MonthlyIncome        string `json:"monthlyIncome"`
	LoanRepayment        string `json:"loanRepayment"`
}

// Socials lists a user's social media handles.
type Socials struct {
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Guarantor identifies the person vouching for a user's loans.
type Guarantor struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
	Relationship string `json:"relationship"`
}

// User aggregates everything the dashboard knows about a platform user.
// DateJoined and the monetary fields are kept as display strings because the
// upstream dataset ships them pre-formatted.
type User struct {
	ID                     string                 `json:"id"`
	Organization           string                 `json:"organization"`
	Username               string                 `json:"username"`
	Email                  string                 `json:"email"`
	PhoneNumber            string                 `json:"phoneNumber"`
	DateJoined             string                 `json:"dateJoined"`
	Status                 Status                 `json:"status"`
	PersonalInfo           PersonalInfo           `json:"personalInfo"`
	EducationAndEmployment EducationAndEmployment `json:"educationAndEmployment"`
	Socials                Socials                `json:"socials"`
	Guarantor              Guarantor              `json:"guarantor"`
	AccountBalance         string                 `json:"accountBalance"`
	AccountNumber          string                 `json:"accountNumber"`
	BankName               string                 `json:"bankName"`
	UserTier               int                    `json:"userTier"`
}
