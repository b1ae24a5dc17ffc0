package contract

import "github.com/abramin/Victus-sub005/internal/app"

type PlanView = app.PlanView

type TargetView = app.TargetView

type SnapshotView = app.SnapshotView

type CalculatedTargetsView = app.CalculatedTargetsView

type TrainingSummaryView = app.TrainingSummaryView

type AnalysisView = app.AnalysisView

type TrendView = app.TrendView

type LandingView = app.LandingView

type OptionView = app.OptionView

type OptionSetView = app.OptionSetView

type NotificationView = app.NotificationView

type ProfileView = app.ProfileView

type ChartPoint = app.ChartPoint

type ChartResponse = app.ChartResponse

type DayLoadPoint = app.DayLoadPoint

type LoadResponse = app.LoadResponse
