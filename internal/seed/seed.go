package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	organizationdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	"gorm.io/gorm"
)

const (
	defaultOrgName     = "Main"
	defaultOrgTimezone = "Asia/Riyadh"
)

// EnsureMainOrg seeds the default organization for startup bootstrap.
func EnsureMainOrg(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainOrgTx(ctx, tx, node.Generate())
		return err
	})
}

// EnsureMainOrgWithID seeds the default organization under a fixed ID so
// self-hosted deployments can pin DEFAULT_ORG.
func EnsureMainOrgWithID(db *gorm.DB, orgID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainOrgTx(ctx, tx, snowflake.ID(orgID))
		return err
	})
}

func ensureMainOrgTx(ctx context.Context, tx *gorm.DB, orgID snowflake.ID) (organizationdomain.Organization, error) {
	var existing organizationdomain.Organization
	err := tx.WithContext(ctx).
		Where("name = ?", defaultOrgName).
		First(&existing).Error
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return organizationdomain.Organization{}, err
	}

	now := time.Now().UTC()
	org := organizationdomain.Organization{
		ID:        orgID,
		Name:      defaultOrgName,
		VATNumber: "",
		Timezone:  defaultOrgTimezone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return organizationdomain.Organization{}, err
	}
	return org, nil
}
