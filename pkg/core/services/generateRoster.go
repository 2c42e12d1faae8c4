package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/export"
)

// StaffSource defines the operations needed to load the staff pool
type StaffSource interface {
	ListStaff(ctx context.Context, duties []model.DutyType) ([]model.StaffMember, error)
}

// RosterPublisher defines the operations needed to publish a finished roster
type RosterPublisher interface {
	PublishRoster(ctx context.Context, spreadsheetID, tabTitle string, rows [][]string) error
}

// GenerateRosterOptions controls a single generation run
type GenerateRosterOptions struct {
	// Year and Month override the configured roster month when non-zero
	Year  int
	Month int

	// Now anchors the next-month fallback used when no month is set anywhere.
	// Zero means the current time.
	Now time.Time

	// Seed fixes the tie-break source; nil means time-seeded
	Seed *uint64

	// DryRun allocates and reports without writing a CSV or publishing
	DryRun bool

	// CSVPath overrides the export location. Empty means
	// shift_<year>_<month>.csv in the configured output directory.
	CSVPath string

	// Publish writes the roster to the configured roster spreadsheet
	Publish bool

	// Force publishes even when the finished roster fails validation
	Force bool
}

// GenerateRosterResult contains the outcome of a generation run
type GenerateRosterResult struct {
	RunID    string
	Year     int
	Month    int
	Holidays []int
	Outcome  *allocator.AllocationOutcome

	// CSVPath is the file written, empty for dry runs
	CSVPath string

	// PublishedTab is the spreadsheet tab written, empty when not published
	PublishedTab string
}

// GenerateRoster loads staff, resolves the month's holidays, runs the allocator,
// then exports and optionally publishes the result.
// A nil staff source generates cfg.StaffCount() staff holding every skill.
func GenerateRoster(
	ctx context.Context,
	staffSource StaffSource,
	publisher RosterPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateRosterOptions,
) (*GenerateRosterResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	year, month, err := ResolveMonth(cfg, opts.Year, opts.Month, now)
	if err != nil {
		return nil, err
	}

	logger.Debug("Starting generateRoster",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("publish", opts.Publish))

	if opts.Publish && !opts.DryRun {
		if cfg.RosterSheetID == "" {
			return nil, fmt.Errorf("rosterSheetID must be configured to publish")
		}
		if publisher == nil {
			return nil, fmt.Errorf("no roster publisher available")
		}
	}

	// Step 1: Holidays
	holidays, err := ResolveHolidays(cfg, year, month, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved holidays", zap.Ints("holidays", holidays))

	// Step 2: Duty lists
	dutyInput := DutyOrderFromConfig(cfg)
	_, _, known, err := allocator.InitDutyOrder(dutyInput)
	if err != nil {
		return nil, fmt.Errorf("invalid duty configuration: %w", err)
	}

	// Step 3: Staff
	var staff []model.StaffMember
	if staffSource == nil {
		staff = model.DefaultStaff(cfg.StaffCount(), known)
		logger.Info("No staff source configured, using generated staff", zap.Int("count", len(staff)))
	} else {
		staff, err = staffSource.ListStaff(ctx, SkillDuties(known))
		if err != nil {
			return nil, fmt.Errorf("failed to load staff: %w", err)
		}
		logger.Debug("Loaded staff", zap.Int("count", len(staff)))
	}

	// Step 4: Allocate
	allocCfg := allocator.AllocationConfig{
		Year:                        year,
		Month:                       month,
		Holidays:                    holidays,
		Staff:                       staff,
		AncillaryDuties:             dutyInput.AncillaryDuties,
		WeekdayDuties:               dutyInput.WeekdayDuties,
		OffDayDuties:                dutyInput.OffDayDuties,
		PaidLeaveCountsAsRest:       cfg.PaidLeaveAsRest(),
		DisableCompensationFallback: !cfg.UseCompensationFallback(),
	}
	if opts.Seed != nil {
		allocCfg.Rand = allocator.NewRand(*opts.Seed)
		logger.Debug("Using fixed seed", zap.Uint64("seed", *opts.Seed))
	}

	outcome, err := allocator.Allocate(allocCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate roster: %w", err)
	}

	for _, slot := range outcome.UnfilledSlots {
		logger.Warn("Unfilled slot", zap.Int("day", slot.Day), zap.String("duty", string(slot.Duty)))
	}
	for _, warning := range outcome.Warnings {
		logger.Warn(warning.Description,
			zap.String("kind", string(warning.Kind)),
			zap.String("staff", warning.StaffName),
			zap.Int("origin_day", warning.OriginDay))
	}
	for _, verr := range outcome.ValidationErrors {
		logger.Error("Roster validation failed",
			zap.String("criterion", verr.CriterionName),
			zap.String("staff", verr.StaffName),
			zap.Int("day", verr.Day),
			zap.String("description", verr.Description))
	}

	logger.Info("Roster allocated",
		zap.Int("staff", len(staff)),
		zap.Int("days", len(outcome.State.Days)),
		zap.Int("unfilled", len(outcome.UnfilledSlots)),
		zap.Int("warnings", len(outcome.Warnings)),
		zap.Bool("success", outcome.Success))

	result := &GenerateRosterResult{
		RunID:    runID,
		Year:     year,
		Month:    month,
		Holidays: holidays,
		Outcome:  outcome,
	}

	if opts.DryRun {
		logger.Info("Dry run, skipping export and publish")
		return result, nil
	}

	// Step 5: Export
	csvPath := opts.CSVPath
	if csvPath == "" {
		csvPath = filepath.Join(cfg.OutputDir, export.DefaultFileName(year, month))
	}
	if err := export.WriteCSVFile(csvPath, outcome.State, outcome.Summary); err != nil {
		return nil, fmt.Errorf("failed to export roster: %w", err)
	}
	result.CSVPath = csvPath
	logger.Info("Roster exported", zap.String("path", csvPath))

	// Step 6: Publish
	if !opts.Publish {
		return result, nil
	}
	if !outcome.Success && !opts.Force {
		return result, fmt.Errorf("roster failed validation with %d errors, use force to publish anyway", len(outcome.ValidationErrors))
	}

	tab := sheetsclient.RosterTabTitle(year, month)
	rows := append(export.Table(outcome.State, outcome.Summary), []string{}, []string{"Run " + runID})
	if err := publisher.PublishRoster(ctx, cfg.RosterSheetID, tab, rows); err != nil {
		return result, fmt.Errorf("failed to publish roster: %w", err)
	}
	result.PublishedTab = tab

	return result, nil
}
