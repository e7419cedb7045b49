package status

// AppStatus is the liveness of the two backing services.
type AppStatus struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// AppStats holds the aggregate counts read from the database.
type AppStats struct {
	Users int `json:"users"`
	Files int `json:"files"`
}

// Report is AppStatus and AppStats flattened into one object.
type Report struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
	Users int  `json:"users"`
	Files int  `json:"files"`
}

// NewReport flattens a status and stats pair.
func NewReport(s AppStatus, st AppStats) Report {
	return Report{Redis: s.Redis, DB: s.DB, Users: st.Users, Files: st.Files}
}
