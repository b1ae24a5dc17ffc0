package service

import (
	"context"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/repository"
)

// loadSeriesDays is the default length of the training-load series.
const loadSeriesDays = 28

type analysisService struct {
	plans    repository.PlanRepo
	logs     repository.LogRepo
	cat      *catalog.Catalog
	observer UseCaseObserver
	now      func() time.Time
}

// NewAnalysisService creates the read-only analysis use cases.
func NewAnalysisService(
	plans repository.PlanRepo,
	logs repository.LogRepo,
	cat *catalog.Catalog,
	observers ...UseCaseObserver,
) AnalysisService {
	return &analysisService{
		plans:    plans,
		logs:     logs,
		cat:      cat,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *analysisService) Analyze(ctx context.Context, req contract.AnalysisRequest) (view *contract.AnalysisView, err error) {
	start := s.now()
	defer func() {
		reportUseCase(ctx, s.observer, "plan_analyze", start, map[string]any{"date": req.Date}, err)
	}()

	date, err := resolveDate(req.Date, s.now)
	if err != nil {
		return nil, err
	}

	var plan *domain.NutritionPlan
	if req.PlanID == "" {
		plan, err = s.plans.GetActive(ctx)
	} else {
		plan, err = s.plans.GetByID(ctx, req.PlanID)
	}
	if err != nil {
		return nil, err
	}

	history, err := s.logs.Range(ctx, plan.StartDate, date)
	if err != nil {
		return nil, err
	}

	result := analysis.AnalyzePlan(analysis.AnalysisInput{
		Plan:         *plan,
		Weights:      weightPoints(history),
		AnalysisDate: date,
	})
	v := app.NewAnalysisView(result)
	return &v, nil
}

// TrainingLoad builds the daily load series ending at the requested date and
// derives the acute/chronic picture from it. Days without a log count as zero
// load, so the calendar stays continuous.
func (s *analysisService) TrainingLoad(ctx context.Context, req contract.LoadRequest) (*contract.LoadResponse, error) {
	date, err := resolveDate(req.Date, s.now)
	if err != nil {
		return nil, err
	}
	days := req.Days
	if days <= 0 {
		days = loadSeriesDays
	}
	if days > 365 {
		return nil, Validationf("load series length %d exceeds the 365-day maximum", days)
	}

	// The chronic baseline needs 28 days of history even when the caller asks
	// for a shorter series.
	histDays := days
	if histDays < loadSeriesDays {
		histDays = loadSeriesDays
	}
	from := date.AddDate(0, 0, -(histDays - 1))
	logs, err := s.logs.Range(ctx, from, date)
	if err != nil {
		return nil, err
	}

	loadByDate := make(map[time.Time]float64, len(logs))
	for _, l := range logs {
		loadByDate[domain.DateOf(l.Date)] = analysis.DayLoad(l.ActualSessions, s.cat)
	}

	history := make([]float64, 0, histDays)
	for i := histDays - 1; i >= 0; i-- {
		history = append(history, loadByDate[date.AddDate(0, 0, -i)])
	}

	acute := analysis.AcuteLoad(history)
	chronic := analysis.ChronicLoad(history)
	acr := analysis.ACR(acute, chronic)

	series := make([]contract.DayLoadPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := date.AddDate(0, 0, -i)
		series = append(series, contract.DayLoadPoint{
			Date: domain.FormatDate(d),
			Load: loadByDate[d],
		})
	}

	return &contract.LoadResponse{
		Date:            domain.FormatDate(date),
		Days:            series,
		AcuteLoad:       acute,
		ChronicLoad:     chronic,
		ACR:             acr,
		Zone:            string(analysis.Zone(acr)),
		OverloadedToday: analysis.Overloaded(history[len(history)-1], chronic),
	}, nil
}
