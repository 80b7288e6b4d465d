package entity

type DashboardStats struct {
	TotalTeachers    int
	ActiveTeachers   int
	InactiveTeachers int
	TotalStudents    int
	TotalSections    int
	TotalPlayers     int
	SessionsPlayed   int
	AverageProgress  float64

	RecentUsers []User
}
