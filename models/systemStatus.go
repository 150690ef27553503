package models

import "time"

const MaintenanceStatusKey = "maintenance_mode"

type SystemStatus struct {
	Status_Key string     `json:"-"`
	Is_Active  bool       `json:"isMaintenance"`
	Message    string     `json:"message"`
	Starts_At  *time.Time `json:"startsAt"`
	Ends_At    *time.Time `json:"endsAt"`
	Updated_At time.Time  `json:"updatedAt" goqu:"skipinsert"`
}

// Scheduled reports a maintenance window that has not started yet.
func (s SystemStatus) Scheduled(now time.Time) bool {
	return s.Starts_At != nil && s.Starts_At.After(now)
}

type MaintenanceUpdate struct {
	Is_Active *bool      `json:"isMaintenance" binding:"required"`
	Message   string     `json:"message"`
	Starts_At *time.Time `json:"startsAt"`
	Ends_At   *time.Time `json:"endsAt"`
}
