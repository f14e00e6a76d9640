package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/stokvela/backend/internal/currency"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// Analytics summarizes a user's savings position across stokvels.
type Analytics struct {
	TotalContributions         float64          `json:"totalContributions"`
	TotalSavings               float64          `json:"totalSavings"`
	ActiveStokvels             int              `json:"activeStokvels"`
	CompletedStokvels          int              `json:"completedStokvels"`
	AverageMonthlyContribution float64          `json:"averageMonthlyContribution"`
	TrustScore                 int              `json:"trustScore"`
	StokvelBreakdown           []BreakdownEntry `json:"stokvelBreakdown"`
}

// BreakdownEntry attributes a share of the user's contributions to one
// stokvel.
type BreakdownEntry struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// StokvelAnalytics reports the health of a single stokvel.
type StokvelAnalytics struct {
	StokvelID   int64            `json:"stokvelId"`
	Performance PerformanceStats `json:"performance"`
	MemberStats MemberStats      `json:"memberStats"`
}

// PerformanceStats covers pool progress against the target.
type PerformanceStats struct {
	TotalContributions  float64 `json:"totalContributions"`
	TargetAmount        float64 `json:"targetAmount"`
	ProgressPercentage  int     `json:"progressPercentage"`
	MonthsRemaining     int     `json:"monthsRemaining"`
	AverageContribution float64 `json:"averageContribution"`
}

// MemberStats covers the member roster.
type MemberStats struct {
	TotalMembers        int     `json:"totalMembers"`
	ActiveMembers       int     `json:"activeMembers"`
	AverageContribution float64 `json:"averageContribution"`
	TopContributor      string  `json:"topContributor"`
}

// Tip is one personalized insight.
type Tip struct {
	Category   string `json:"category"`
	Tip        string `json:"tip"`
	Priority   string `json:"priority"`
	Actionable bool   `json:"actionable"`
}

// Goal tracks one stokvel target.
type Goal struct {
	Name     string    `json:"name"`
	Target   float64   `json:"target"`
	Current  float64   `json:"current"`
	Deadline time.Time `json:"deadline"`
	OnTrack  bool      `json:"onTrack"`
}

// GoalTracking lists the user's active stokvel targets.
type GoalTracking struct {
	CurrentGoals []Goal `json:"currentGoals"`
}

// Insights bundles personalized tips and goal tracking.
type Insights struct {
	PersonalizedTips []Tip        `json:"personalizedTips"`
	GoalTracking     GoalTracking `json:"goalTracking"`
}

// AnalyticsService computes analytics from live store data; nothing is
// precomputed or cached.
type AnalyticsService struct {
	store storage.Store
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store storage.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Overview summarizes the user's position across all their stokvels.
func (s *AnalyticsService) Overview(ctx context.Context, userID int64) (*Analytics, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stokvels, err := s.store.ListStokvelsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &Analytics{TrustScore: user.TrustScore}
	var earliestJoin time.Time
	for _, stokvel := range stokvels {
		switch stokvel.Status {
		case models.StatusCompleted:
			out.CompletedStokvels++
		default:
			out.ActiveStokvels++
		}
		out.TotalSavings += stokvel.Balance

		member := stokvel.MemberByID(userID)
		if member == nil {
			continue
		}
		out.TotalContributions += member.Contributions
		if earliestJoin.IsZero() || member.JoinedAt.Before(earliestJoin) {
			earliestJoin = member.JoinedAt
		}
		out.StokvelBreakdown = append(out.StokvelBreakdown, BreakdownEntry{
			Name:   stokvel.Name,
			Amount: member.Contributions,
		})
	}

	for i := range out.StokvelBreakdown {
		if out.TotalContributions > 0 {
			pct := out.StokvelBreakdown[i].Amount / out.TotalContributions * 100
			out.StokvelBreakdown[i].Percentage = math.Round(pct*10) / 10
		}
	}

	if !earliestJoin.IsZero() {
		months := monthsSince(earliestJoin, time.Now())
		out.AverageMonthlyContribution = out.TotalContributions / float64(months)
	}

	slog.Info("analytics computed", "user_id", userID, "stokvels", len(stokvels))
	return out, nil
}

// ForStokvel reports the health of one stokvel. Non-members get
// ErrForbidden.
func (s *AnalyticsService) ForStokvel(ctx context.Context, stokvelID, userID int64) (*StokvelAnalytics, error) {
	stokvel, err := s.store.GetStokvel(ctx, stokvelID)
	if err != nil {
		return nil, err
	}
	if !stokvel.HasMember(userID) {
		return nil, ErrForbidden
	}

	out := &StokvelAnalytics{StokvelID: stokvelID}
	out.Performance = PerformanceStats{
		TotalContributions:  stokvel.Balance,
		TargetAmount:        stokvel.TargetAmount,
		ProgressPercentage:  currency.Percentage(stokvel.Balance, stokvel.TargetAmount),
		MonthsRemaining:     monthsUntil(time.Now(), stokvel.EndDate),
		AverageContribution: stokvel.ContributionAmount,
	}

	stats := MemberStats{TotalMembers: len(stokvel.Members)}
	var top float64
	for _, m := range stokvel.Members {
		if m.Status == models.StatusActive {
			stats.ActiveMembers++
		}
		if m.Contributions >= top && m.Contributions > 0 {
			top = m.Contributions
			stats.TopContributor = m.Name
		}
	}
	if len(stokvel.Members) > 0 {
		stats.AverageContribution = stokvel.Balance / float64(len(stokvel.Members))
	}
	out.MemberStats = stats

	return out, nil
}

// ForUser derives personalized tips and goal tracking from the user's
// current stokvels.
func (s *AnalyticsService) ForUser(ctx context.Context, userID int64) (*Insights, error) {
	stokvels, err := s.store.ListStokvelsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &Insights{PersonalizedTips: []Tip{}}
	now := time.Now()

	if len(stokvels) == 0 {
		out.PersonalizedTips = append(out.PersonalizedTips, Tip{
			Category:   "Savings",
			Tip:        "Join or create a stokvel to start building a savings habit with your community.",
			Priority:   "high",
			Actionable: true,
		})
		return out, nil
	}

	types := map[string]bool{}
	for _, stokvel := range stokvels {
		types[stokvel.Type] = true
		if stokvel.Status != models.StatusActive {
			continue
		}

		progress := currency.Percentage(stokvel.Balance, stokvel.TargetAmount)
		onTrack := isOnTrack(stokvel, now)
		out.GoalTracking.CurrentGoals = append(out.GoalTracking.CurrentGoals, Goal{
			Name:     stokvel.Name,
			Target:   stokvel.TargetAmount,
			Current:  stokvel.Balance,
			Deadline: stokvel.EndDate,
			OnTrack:  onTrack,
		})

		if !onTrack && progress < 100 {
			out.PersonalizedTips = append(out.PersonalizedTips, Tip{
				Category:   "Goals",
				Tip:        stokvel.Name + " is behind its target. Consider an extra contribution this cycle.",
				Priority:   "high",
				Actionable: true,
			})
		}
	}

	if len(types) == 1 && len(stokvels) > 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, Tip{
			Category:   "Diversification",
			Tip:        "All your stokvels are the same type. Mixing savings and investment groups spreads your risk.",
			Priority:   "medium",
			Actionable: true,
		})
	}

	return out, nil
}

// monthsSince counts whole calendar months between two dates. The
// result is at least 1 so averages over it stay defined for accounts
// younger than a month.
func monthsSince(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}

// monthsUntil counts whole months remaining, never negative.
func monthsUntil(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24 / 30)
}

// isOnTrack compares pool progress against the elapsed share of the
// stokvel's lifetime.
func isOnTrack(s models.Stokvel, now time.Time) bool {
	total := s.EndDate.Sub(s.CreatedAt)
	if total <= 0 || s.TargetAmount == 0 {
		return true
	}
	elapsed := now.Sub(s.CreatedAt)
	if elapsed <= 0 {
		return true
	}
	expected := math.Min(float64(elapsed)/float64(total), 1)
	return s.Balance/s.TargetAmount >= expected
}
