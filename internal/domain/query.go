package domain

const (
	// DefaultPage and DefaultLimit apply when pagination is unspecified.
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination selects a page of a result set. Zero values fall back to the
// defaults rather than being treated as errors.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the parameters to the documented minimums.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Filter narrows a user collection. Empty fields impose no constraint; all
// provided fields must match (conjunctive).
type Filter struct {
	Organization string `json:"organization"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Status       Status `json:"status"`
	Date         string `json:"date"`
}

// IsZero reports whether the filter imposes no constraints at all.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// SortDirection orders a sorted listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort names the field and direction for an ordered listing. An empty Field
// leaves the collection in its natural order.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// UserPage is one page of a filtered user listing. Total counts every record
// matching the filter, independent of the slice boundaries.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Statistics summarises the dashboard headline cards. Values are
// thousands-separated display strings.
type Statistics struct {
	TotalUsers       string `json:"totalUsers"`
	ActiveUsers      string `json:"activeUsers"`
	UsersWithLoans   string `json:"usersWithLoans"`
	UsersWithSavings string `json:"usersWithSavings"`
}
