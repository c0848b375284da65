package db

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

var ErrInvalidTransition = errors.New("invalid job status transition")

type Database struct {
	Orm *gorm.DB
}

func (db Database) Initialize() error {
	return db.Orm.AutoMigrate(
		&FixJob{},
		&DomainLock{},
	)
}

func (db Database) CreateFixJob(job *FixJob) error {
	tx := db.Orm.Create(job)
	if tx.Error != nil {
		return tx.Error
	}
	return nil
}

func (db Database) GetFixJob(jobID string) (*FixJob, error) {
	var job FixJob
	tx := db.Orm.Where("job_id = ?", jobID).First(&job)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &job, nil
}

// UpdateFixJobProgress moves an active job forward. Transitions that the
// state machine forbids are rejected, and progress never decreases.
func (db Database) UpdateFixJobProgress(jobID string, status types.FixJobStatus, progress int, currentStep string) error {
	job, err := db.GetFixJob(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %s not found", jobID)
	}
	if !types.ValidTransition(job.Status, status) {
		return ErrInvalidTransition
	}
	if progress < job.ProgressPercent {
		progress = job.ProgressPercent
	}

	tx := db.Orm.Model(&FixJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]any{
			"status":           status,
			"progress_percent": progress,
			"current_step":     currentStep,
		})
	return tx.Error
}

func (db Database) SetFixJobResult(jobID string, result datatypes.JSON) error {
	job, err := db.GetFixJob(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %s not found", jobID)
	}
	if !types.ValidTransition(job.Status, types.FixJobCompleted) {
		return ErrInvalidTransition
	}

	tx := db.Orm.Model(&FixJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]any{
			"status":           types.FixJobCompleted,
			"progress_percent": 100,
			"result":           result,
		})
	return tx.Error
}

func (db Database) SetFixJobFailure(jobID string, errorMessage string) error {
	job, err := db.GetFixJob(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %s not found", jobID)
	}
	if !types.ValidTransition(job.Status, types.FixJobFailed) {
		return ErrInvalidTransition
	}

	tx := db.Orm.Model(&FixJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]any{
			"status":        types.FixJobFailed,
			"error_message": errorMessage,
		})
	return tx.Error
}

// GetOrCreateDomainLock returns the lock row for a domain, creating it
// with the configured free quota on first use.
func (db Database) GetOrCreateDomainLock(domain string, freeLimit int) (*DomainLock, error) {
	lock := DomainLock{
		Domain:     domain,
		FixesLimit: freeLimit,
	}
	tx := db.Orm.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "domain"}},
		DoNothing: true,
	}).Create(&lock)
	if tx.Error != nil {
		return nil, tx.Error
	}

	var out DomainLock
	if tx := db.Orm.Where("domain = ?", domain).First(&out); tx.Error != nil {
		return nil, tx.Error
	}
	return &out, nil
}

func (db Database) IncrementFixesUsed(domain string) error {
	tx := db.Orm.Model(&DomainLock{}).
		Where("domain = ?", domain).
		Update("fixes_used", gorm.Expr("fixes_used + 1"))
	return tx.Error
}

// ListDomainLocks returns the lock rows, optionally narrowed to the given
// domains.
func (db Database) ListDomainLocks(domains []string) ([]DomainLock, error) {
	query := db.Orm.Order("created_at desc")
	if len(domains) > 0 {
		query = query.Where("domain IN ?", domains)
	}

	var locks []DomainLock
	tx := query.Find(&locks)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return locks, nil
}
