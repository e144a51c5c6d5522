package repositoryImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yearplan/database"
	"yearplan/entities"
	"yearplan/pkg/plan/repository"
	"yearplan/pkg/plan/types"
)

type planRepo struct{ store *database.Store }

func New(store *database.Store) repository.PlanRepository { return &planRepo{store} }

func (r *planRepo) GetByYear(year int) (*types.PlanView, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}
	var rec entities.AnnualPlan
	if err := db.Where("year = ?", year).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get year %d: %w", year, err)
	}
	var doc types.PlanDoc
	if err := json.Unmarshal([]byte(rec.Data), &doc); err != nil {
		return nil, fmt.Errorf("%w: data for year %d: %v", repository.ErrCorrupt, year, err)
	}
	view := types.PlanView{
		Year:      rec.Year,
		Theme:     rec.Theme,
		YearData:  doc.YearData,
		MonthData: doc.MonthData,
	}
	if rec.BgImages != nil {
		if !json.Valid([]byte(*rec.BgImages)) {
			return nil, fmt.Errorf("%w: bg_images for year %d", repository.ErrCorrupt, year)
		}
		view.BackgroundImages = json.RawMessage(*rec.BgImages)
	}
	return &view, nil
}

func (r *planRepo) Upsert(year int, in types.SavePlanInput) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}
	if absent(in.YearData) || absent(in.MonthData) {
		return repository.ErrValidation
	}
	data, err := json.Marshal(types.PlanDoc{YearData: in.YearData, MonthData: in.MonthData})
	if err != nil {
		return fmt.Errorf("serialize plan doc: %w", err)
	}
	rec := entities.AnnualPlan{
		Year:      year,
		Data:      string(data),
		Theme:     in.Theme,
		CreatedAt: time.Now(),
	}
	if !absent(in.BackgroundImages) {
		s := string(in.BackgroundImages)
		rec.BgImages = &s
	}
	// One statement keyed on the year unique index; created_at is
	// absent from the update set so the original insert time survives.
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "theme", "bg_images"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert year %d: %w", year, err)
	}
	return nil
}

func (r *planRepo) ExportAll() ([]entities.AnnualPlan, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}
	rows := make([]entities.AnnualPlan, 0)
	if err := db.Order("year ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return rows, nil
}

func (r *planRepo) RestoreAll(rows []types.BackupRow) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		// DELETE, not TRUNCATE: TRUNCATE commits implicitly on MySQL
		// and would break the all-or-nothing guarantee.
		if err := tx.Exec("DELETE FROM annual_plans").Error; err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
		for i, row := range rows {
			rec, err := fromBackupRow(row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("row %d (year %d): %w", i, row.Year, err)
			}
		}
		return nil
	})
}

func (r *planRepo) ResetAll() error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}
	m := db.Migrator()
	if m.HasTable(&entities.AnnualPlan{}) {
		if err := m.DropTable(&entities.AnnualPlan{}); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	if err := m.CreateTable(&entities.AnnualPlan{}); err != nil {
		return fmt.Errorf("recreate table: %w", err)
	}
	return nil
}

func absent(m json.RawMessage) bool { return len(m) == 0 || string(m) == "null" }

// fromBackupRow rebuilds a storable record from one backup element.
// Surrogate ids are not replayed; year is the identity that matters.
func fromBackupRow(row types.BackupRow) (*entities.AnnualPlan, error) {
	if row.Year <= 0 {
		return nil, errors.New("missing or invalid year")
	}
	data, err := docText(row.Data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if data == "" {
		return nil, errors.New("missing data document")
	}
	rec := entities.AnnualPlan{
		Year:      row.Year,
		Data:      data,
		Theme:     row.Theme,
		CreatedAt: rowCreatedAt(row.CreatedAt),
	}
	bg, err := docText(row.BgImages)
	if err != nil {
		return nil, fmt.Errorf("bg_images: %w", err)
	}
	if bg != "" {
		rec.BgImages = &bg
	}
	return &rec, nil
}

// docText normalizes a backup document to its serialized text form:
// pre-serialized strings are unquoted, structured objects keep their
// raw JSON. The result must itself be valid JSON.
func docText(raw json.RawMessage) (string, error) {
	if absent(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", nil
		}
		if !json.Valid([]byte(s)) {
			return "", fmt.Errorf("not valid JSON: %q", s)
		}
		return s, nil
	}
	if !json.Valid(raw) {
		return "", errors.New("not valid JSON")
	}
	return string(raw), nil
}

// rowCreatedAt reconstructs the original insert time: RFC3339 string,
// epoch milliseconds, or now when the backup carries neither.
func rowCreatedAt(raw json.RawMessage) time.Time {
	if absent(raw) {
		return time.Now()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return time.Now()
	}
	if ms, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return time.Now()
}
