package models

// AdminStats aggregates platform-wide figures for the admin dashboard
type AdminStats struct {
	TotalContests    int64   `json:"totalContests"`
	TotalUsers       int64   `json:"totalUsers"`
	TotalEntries     int64   `json:"totalEntries"`
	QualifiedEntries int64   `json:"qualifiedEntries"`
	TotalRevenue     float64 `json:"totalRevenue"`
}
