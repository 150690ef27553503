package models

import "time"

// FamilyPasswordKey holds the bcrypt hash of the shared family access password.
const FamilyPasswordKey = "family_access_password"

type AppSetting struct {
	Setting_Key   string    `json:"settingKey"`
	Setting_Value string    `json:"-"`
	Updated_At    time.Time `json:"updatedAt" goqu:"skipinsert"`
}

type FamilyAccessRequest struct {
	Password string `json:"password" binding:"required"`
}

type FamilyPasswordUpdate struct {
	Password string `json:"password" binding:"required,min=4"`
}
