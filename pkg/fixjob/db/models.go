package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

type FixJob struct {
	gorm.Model
	JobID           string `gorm:"uniqueIndex"`
	ScanID          string `gorm:"index"`
	IssueID         string
	Domain          string `gorm:"index"`
	Status          types.FixJobStatus
	ProgressPercent int
	CurrentStep     string
	IssueData       datatypes.JSON
	Result          datatypes.JSON
	ErrorMessage    string
}

type DomainLock struct {
	gorm.Model
	Domain     string `gorm:"uniqueIndex"`
	FixesUsed  int
	FixesLimit int
	IsUnlocked bool
}

func (l DomainLock) ToAPI() types.DomainLock {
	return types.DomainLock{
		Domain:     l.Domain,
		FixesUsed:  l.FixesUsed,
		FixesLimit: l.FixesLimit,
		IsUnlocked: l.IsUnlocked,
	}
}
