package employee

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/balance"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
)

const historyLimit = 10

//go:generate mockgen -source=context_provider.go -destination=mock/context_provider_mock.go -package=mock
type ContextProvider interface {
	BuildContext(ctx context.Context, companyID, employeeID string, cfg decision.PolicyConfig, now time.Time) (decision.EmployeeContext, error)
}

// contextProvider assembles the read-only employee snapshot the decision
// pipeline consumes: per-category balances, bounded history and aggregate
// stats derived from past leave requests.
type contextProvider struct {
	db       *gorm.DB
	balances balance.Service
	logger   *zap.Logger
}

func NewContextProvider(db *gorm.DB, balances balance.Service, logger ...*zap.Logger) ContextProvider {
	l := zap.L().Named("employee.context")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.context")
	}
	return &contextProvider{db: db, balances: balances, logger: l}
}

// leaveHistoryRow is the projection read from the leave_requests table. The
// provider deliberately does not depend on the leave package.
type leaveHistoryRow struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
	TotalDays int
	Status    string
	CreatedAt time.Time
}

func (p *contextProvider) BuildContext(ctx context.Context, companyID, employeeID string, cfg decision.PolicyConfig, now time.Time) (decision.EmployeeContext, error) {
	balances, err := p.balances.Snapshot(ctx, companyID, employeeID, now.UTC().Year())
	if err != nil {
		p.logger.Error("load balance snapshot failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return decision.EmployeeContext{}, err
	}

	windowStart := now.AddDate(0, 0, -cfg.HistoryWindowDays)
	var rows []leaveHistoryRow
	err = p.db.WithContext(ctx).
		Table("leave_requests").
		Select("category", "start_date", "end_date", "total_days", "status", "created_at").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("deleted_at IS NULL").
		Where("created_at >= ?", windowStart).
		Where("status IN ?", []string{"APPROVED", "PENDING", "PENDING_REVIEW"}).
		Order("created_at DESC").
		Limit(100).
		Find(&rows).Error
	if err != nil {
		p.logger.Error("load leave history failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return decision.EmployeeContext{}, err
	}

	return decision.EmployeeContext{
		Balances: balances,
		History:  mapHistory(rows),
		Stats:    computeStats(rows, now),
	}, nil
}

func mapHistory(rows []leaveHistoryRow) []decision.HistoryEntry {
	n := len(rows)
	if n > historyLimit {
		n = historyLimit
	}
	history := make([]decision.HistoryEntry, 0, n)
	for _, row := range rows[:n] {
		history = append(history, decision.HistoryEntry{
			Category:    row.Category,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			Days:        row.TotalDays,
			Outcome:     row.Status,
			SubmittedAt: row.CreatedAt,
		})
	}
	return history
}

func computeStats(rows []leaveHistoryRow, now time.Time) decision.AggregateStats {
	var stats decision.AggregateStats

	cutoff30 := now.AddDate(0, 0, -30)
	cutoff90 := now.AddDate(0, 0, -90)

	totalDuration := 0
	categoryCounts := map[string]int{}
	starts90 := 0

	for _, row := range rows {
		totalDuration += row.TotalDays
		categoryCounts[row.Category]++

		if row.CreatedAt.After(cutoff30) && isUnplanned(row) {
			stats.UnplannedLast30Days++
		}
		if row.CreatedAt.After(cutoff90) {
			stats.TotalLast90Days++
			starts90++
			switch row.StartDate.Weekday() {
			case time.Monday:
				stats.MondayStartsLast90Days++
			case time.Friday:
				stats.FridayStartsLast90Days++
			}
		}
	}

	if starts90 > 0 {
		stats.PatternScore = float64(stats.MondayStartsLast90Days+stats.FridayStartsLast90Days) / float64(starts90)
	}
	if len(rows) > 0 {
		stats.AverageDurationDays = float64(totalDuration) / float64(len(rows))
	}
	stats.MostUsedCategory = mostUsed(categoryCounts)
	stats.ConsecutiveStreakDays = currentStreak(rows, now)
	stats.RiskLevel = riskLevel(stats)

	return stats
}

// isUnplanned flags leave submitted with less than two days notice.
func isUnplanned(row leaveHistoryRow) bool {
	return row.StartDate.Sub(row.CreatedAt) < 48*time.Hour
}

// currentStreak sums the chain of approved leaves that runs up to now, so the
// consecutive-day cap sees an ongoing or just-finished absence.
func currentStreak(rows []leaveHistoryRow, now time.Time) int {
	edge := now
	streak := 0
	used := make(map[int]bool, len(rows))
	for changed := true; changed; {
		changed = false
		for i, row := range rows {
			if used[i] || row.Status != "APPROVED" {
				continue
			}
			// Leave ends at or after the current chain edge minus a weekend gap.
			if !row.EndDate.Before(edge.AddDate(0, 0, -3)) && row.StartDate.Before(edge) {
				streak += row.TotalDays
				edge = row.StartDate
				used[i] = true
				changed = true
			}
		}
	}
	return streak
}

func mostUsed(counts map[string]int) string {
	best := ""
	bestCount := 0
	for category, count := range counts {
		if count > bestCount || (count == bestCount && category < best) {
			best = category
			bestCount = count
		}
	}
	return best
}

func riskLevel(stats decision.AggregateStats) string {
	switch {
	case stats.PatternScore >= 0.7 || stats.UnplannedLast30Days >= 3:
		return decision.RiskHigh
	case stats.PatternScore >= 0.4 || stats.TotalLast90Days >= 5:
		return decision.RiskMedium
	default:
		return decision.RiskLow
	}
}
