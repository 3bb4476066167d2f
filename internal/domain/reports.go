package domain

// AccountSnapshot is the externally visible state of one account.
type AccountSnapshot struct {
	Client    ClientID `json:"client"`
	Available Money    `json:"available"`
	Held      Money    `json:"held"`
	Total     Money    `json:"total"`
	Locked    bool     `json:"locked"`
}

// Snapshot lists the state of every known account.
type Snapshot []AccountSnapshot

// Stats summarises a processing run.
type Stats struct {
	Processed int                   `json:"processed"`
	Applied   int                   `json:"applied"`
	Failures  map[FailureReason]int `json:"failures"`
}

// FailureCount returns the number of records rejected for any reason.
func (s Stats) FailureCount() int {
	count := 0
	for _, n := range s.Failures {
		count += n
	}
	return count
}
