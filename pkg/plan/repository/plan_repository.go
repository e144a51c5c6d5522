package repository

import (
	"errors"

	"yearplan/entities"
	"yearplan/pkg/plan/types"
)

var (
	// ErrNotFound: no row for the requested year. Expected steady
	// state for a fresh year, not a failure.
	ErrNotFound = errors.New("no plan for year")

	// ErrCorrupt: a row exists but its stored documents do not
	// decode. Never conflated with ErrNotFound.
	ErrCorrupt = errors.New("stored plan document is corrupt")

	// ErrValidation: caller input missing required fields.
	ErrValidation = errors.New("yearData and monthData are required")
)

type PlanRepository interface {
	GetByYear(year int) (*types.PlanView, error)
	Upsert(year int, in types.SavePlanInput) error
	ExportAll() ([]entities.AnnualPlan, error)
	RestoreAll(rows []types.BackupRow) error
	ResetAll() error
}
