package models

import "time"

type AttendanceRecord struct {
	ID            int       `json:"id" goqu:"skipinsert"`
	User_Name     string    `json:"userName"`
	Date          time.Time `json:"date"`
	Is_Present    bool      `json:"isPresent"`
	Note          *string   `json:"note"`
	Campus        *string   `json:"campus"`
	Family_Leader *string   `json:"familyLeader"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
	Updated_At    time.Time `json:"updatedAt" goqu:"skipinsert"`
}

type AttendanceMemberInput struct {
	Name      string `json:"name" binding:"required"`
	IsPresent bool   `json:"isPresent"`
	Note      string `json:"note"`
}

type AttendanceBulkRequest struct {
	Date    string                  `json:"date" binding:"required"`
	Members []AttendanceMemberInput `json:"members" binding:"required,min=1,dive"`
}

type AttendanceUpdate struct {
	Is_Present *bool   `json:"isPresent"`
	Note       *string `json:"note"`
}
