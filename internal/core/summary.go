package core

// Derived aggregates. All of these are value objects computed per report run
// and never mutated after creation.

// CategoryTotal is an amount aggregated by charitable sector.
type CategoryTotal struct {
	Sector string
	Total  Money
}

// YearSummary is the total and donation count for one calendar year.
type YearSummary struct {
	Year  int
	Total Money
	Count int
}

// PayeeSummary is the per-payee rollup used by the pattern classifier.
type PayeeSummary struct {
	PayeeID       string
	Organization  string
	Total         Money
	DonationCount int
	FirstDate     Date
	LastDate      Date
	DistinctYears int
	Schedule      string // first non-empty schedule text seen for this payee
}

// RecurringCharity is one payee qualifying as active-recurring.
type RecurringCharity struct {
	PayeeID          string
	Organization     string
	FirstYear        int
	YearsSupported   int
	AverageAnnual    Money
	TotalEverDonated Money
	PeriodLabel      string // "Semi-Annual", "Annual" or "Unknown"
	LastDonation     Date
}

// ConsistentDonor is a payee with an unbroken trailing streak of
// qualifying-amount years.
type ConsistentDonor struct {
	PayeeID        string
	Organization   string
	Sector         string
	YearlyAmounts  map[int]Money
	StreakTotal    Money
	AveragePerYear Money
}

// CharityRanking is one row of the top-N ranking.
type CharityRanking struct {
	Rank         int
	PayeeID      string
	Organization string
	Total        Money
}
