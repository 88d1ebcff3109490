package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// Generator produces synthetic user records shaped like the remote dataset.
type Generator struct {
	cfg   Config
	rand  *rand.Rand
	vocab vocabulary
	now   func() time.Time
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultConfig().NumUsers
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:   cfg,
		rand:  rand.New(rand.NewSource(cfg.Seed)),
		vocab: defaultVocabulary(),
		now:   time.Now,
	}
}

// Generate synthesises the full user collection.
func (g *Generator) Generate() []domain.User {
	users := make([]domain.User, g.cfg.NumUsers)
	for i := range users {
		users[i] = g.generateUser(i + 1)
	}
	return users
}

func (g *Generator) generateUser(seq int) domain.User {
	firstName := g.pick(g.vocab.firstNames)
	lastName := g.pick(g.vocab.lastNames)
	fullName := firstName + " " + lastName
	organization := g.pick(g.vocab.organizations)
	orgSlug := strings.ToLower(organization)

	return domain.User{
		ID:           fmt.Sprintf("user-%d", seq),
		Organization: organization,
		Username:     fmt.Sprintf("%s%d", strings.ToLower(firstName), seq),
		Email: fmt.Sprintf("%s.%s@%s.com",
			strings.ToLower(firstName[:1]),
			strings.ToLower(truncate(lastName, 3)),
			truncate(orgSlug, 3)),
		PhoneNumber: g.randomPhone(),
		DateJoined:  g.randomJoinDate(),
		Status:      g.randomStatus(),
		PersonalInfo: domain.PersonalInfo{
			FullName:        fullName,
			PhoneNumber:     g.randomPhone(),
			EmailAddress:    strings.ToLower(firstName) + "@gmail.com",
			BVN:             g.randomDigits(11),
			Gender:          g.pick([]string{"Male", "Female"}),
			MaritalStatus:   g.pick([]string{"Single", "Married", "Divorced", "Widowed"}),
			Children:        g.pick([]string{"None", "1", "2", "3", "4", "5+"}),
			TypeOfResidence: g.pick(g.vocab.residenceTypes),
		},
		EducationAndEmployment: domain.EducationAndEmployment{
			LevelOfEducation:     g.pick(g.vocab.educationLevels),
			EmploymentStatus:     g.pick(g.vocab.employmentStatuses),
			SectorOfEmployment:   g.pick(g.vocab.sectors),
			DurationOfEmployment: fmt.Sprintf("%d years", g.rand.Intn(15)+1),
			OfficeEmail:          fmt.Sprintf("%s@%s.com", strings.ToLower(firstName), orgSlug),
			MonthlyIncome:        g.randomAmount(50000, 400000) + " - " + g.randomAmount(400001, 900000),
			LoanRepayment:        g.randomAmount(10000, 100000),
		},
		Socials: domain.Socials{
			Twitter:   fmt.Sprintf("@%s_%s", strings.ToLower(firstName), strings.ToLower(lastName)),
			Facebook:  fullName,
			Instagram: fmt.Sprintf("@%s%s", strings.ToLower(firstName), strings.ToLower(lastName)),
		},
		Guarantor: domain.Guarantor{
			FullName:    g.pick(g.vocab.firstNames) + " " + g.pick(g.vocab.lastNames),
			PhoneNumber: g.randomPhone(),
			EmailAddress: fmt.Sprintf("%s.%s@gmail.com",
				strings.ToLower(g.pick(g.vocab.firstNames)),
				strings.ToLower(g.pick(g.vocab.lastNames))),
			Relationship: g.pick(g.vocab.relationships),
		},
		AccountBalance: g.randomAmount(50000, 500000),
		AccountNumber:  g.randomDigits(10),
		BankName:       g.pick(g.vocab.banks),
		UserTier:       g.rand.Intn(3) + 1,
	}
}

// randomStatus spreads records across every status with a weighting that
// keeps Active in the plurality.
func (g *Generator) randomStatus() domain.Status {
	switch r := g.rand.Float64(); {
	case r < 0.4:
		return domain.StatusActive
	case r < 0.6:
		return domain.StatusInactive
	case r < 0.85:
		return domain.StatusPending
	default:
		return domain.StatusBlacklisted
	}
}

func (g *Generator) randomJoinDate() string {
	start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := g.now()
	span := end.Sub(start)
	joined := start.Add(time.Duration(g.rand.Int63n(int64(span))))
	return joined.Format(domain.DateJoinedLayout)
}

func (g *Generator) randomPhone() string {
	prefix := g.pick([]string{"080", "081", "070", "090", "091"})
	return prefix + g.randomDigits(8)
}

func (g *Generator) randomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + g.rand.Intn(10)))
	}
	return b.String()
}

func (g *Generator) randomAmount(min, max int) string {
	amount := g.rand.Intn(max-min+1) + min
	return fmt.Sprintf("₦%s.00", humanize.Comma(int64(amount)))
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

type vocabulary struct {
	organizations      []string
	firstNames         []string
	lastNames          []string
	educationLevels    []string
	employmentStatuses []string
	sectors            []string
	residenceTypes     []string
	relationships      []string
	banks              []string
}

func defaultVocabulary() vocabulary {
	return vocabulary{
		organizations: []string{"Lendsqr", "Irorun", "Lendstar", "PayDay", "QuickCash", "MoneyPlus"},
		firstNames: []string{"Adedeji", "Grace", "Tosin", "Debby", "Tunde", "Bola", "Chidi", "Emeka", "Ngozi", "Kemi",
			"Femi", "Yemi", "Segun", "Funke", "Dami", "Isaac", "Joy", "Peace", "Faith", "Victor"},
		lastNames: []string{"Effiom", "Ogana", "Dokunmu", "Adebayo", "Okonkwo", "Ibrahim", "Olumide", "Nnamdi", "Okafor", "Eze",
			"Bakare", "Adeleke", "Ajayi", "Balogun", "Chukwu", "Danjuma", "Ekezie", "Fashola", "Garba", "Hassan"},
		educationLevels:    []string{"B.Sc", "M.Sc", "Ph.D", "HND", "OND", "SSCE"},
		employmentStatuses: []string{"Employed", "Self-employed", "Unemployed", "Student"},
		sectors:            []string{"FinTech", "Banking", "Healthcare", "Education", "Agriculture", "Technology", "Entertainment", "Manufacturing"},
		residenceTypes:     []string{"Parent's Apartment", "Own Apartment", "Rented", "Company Provided"},
		relationships:      []string{"Sister", "Brother", "Friend", "Colleague", "Spouse", "Parent", "Uncle", "Aunt"},
		banks:              []string{"Providus Bank", "GTBank", "First Bank", "UBA", "Access Bank", "Zenith Bank", "Sterling Bank", "Fidelity Bank"},
	}
}
