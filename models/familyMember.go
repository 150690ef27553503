package models

import "time"

type FamilyMember struct {
	ID            int       `json:"id" goqu:"skipinsert"`
	Name          string    `json:"name"`
	Campus        *string   `json:"campus"`
	Family_Leader *string   `json:"familyLeader"`
	Is_Active     bool      `json:"isActive" goqu:"skipinsert"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type FamilyMemberCreate struct {
	Name          string  `json:"name" binding:"required"`
	Campus        *string `json:"campus"`
	Family_Leader *string `json:"familyLeader"`
}
