package models

import "time"

type PrayerRequest struct {
	ID          int        `json:"id" goqu:"skipinsert"`
	User_Name   string     `json:"userName"`
	Content     string     `json:"content"`
	Is_Answered bool       `json:"isAnswered" goqu:"skipinsert"`
	Answered_At *time.Time `json:"answeredAt" goqu:"skipinsert"`
	Created_At  time.Time  `json:"createdAt" goqu:"skipinsert"`
}

type PrayerRequestCreate struct {
	User_Name string `json:"userName" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type PrayerAnsweredUpdate struct {
	Is_Answered *bool `json:"isAnswered" binding:"required"`
}
