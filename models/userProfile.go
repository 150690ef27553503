package models

import "time"

type UserProfile struct {
	User_Profile_ID int       `json:"userProfileId" goqu:"skipinsert"`
	Username        string    `json:"username"`
	Password        string    `json:"-"`
	Email           string    `json:"email"`
	First_Name      string    `json:"firstName"`
	Last_Name       string    `json:"lastName"`
	Admin           bool      `json:"admin"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type UserProfileSignup struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Email      string `json:"email"`
	First_Name string `json:"firstName"`
	Last_Name  string `json:"lastName"`
	Admin      bool   `json:"admin"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
