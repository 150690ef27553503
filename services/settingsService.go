package services

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
)

// SetFamilyPassword stores the bcrypt hash of password as the family
// access password, replacing the previous one.
func SetFamilyPassword(ctx context.Context, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash family password: %w", err)
	}

	_, err = initializers.DB.Insert("app_settings").
		Rows(models.AppSetting{Setting_Key: models.FamilyPasswordKey, Setting_Value: string(hash)}).
		OnConflict(goqu.DoUpdate("setting_key", goqu.Record{
			"setting_value": goqu.L("EXCLUDED.setting_value"),
			"updated_at":    goqu.L("NOW()"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("store family password: %w", err)
	}
	return nil
}
