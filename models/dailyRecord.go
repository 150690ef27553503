package models

import "time"

// DailyRecord is one member's devotional activity for one calendar day.
// (User_Name, Date) is unique; a later write for the same pair replaces the earlier one.
type DailyRecord struct {
	ID               int       `json:"id" goqu:"skipinsert"`
	User_Name        string    `json:"userName"`
	Date             time.Time `json:"date"`
	Qt_Count         int       `json:"qtCount"`
	Bible_Read_Count int       `json:"bibleReadCount"`
	Qt_Done          bool      `json:"qtDone"`
	Bible_Read_Done  bool      `json:"bibleReadDone"`
	Writing_Done     bool      `json:"writingDone"`
	Created_At       time.Time `json:"createdAt" goqu:"skipinsert"`
	Updated_At       time.Time `json:"updatedAt" goqu:"skipinsert"`
}

type DailyRecordUpsert struct {
	User_Name        string `json:"userName" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Qt_Count         int    `json:"qtCount" binding:"min=0"`
	Bible_Read_Count int    `json:"bibleReadCount" binding:"min=0"`
	Qt_Done          bool   `json:"qtDone"`
	Bible_Read_Done  bool   `json:"bibleReadDone"`
	Writing_Done     bool   `json:"writingDone"`
}

const DateLayout = "2006-01-02"
